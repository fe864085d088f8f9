package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// StreamEvents is the SSE fan-out. Clients resume with the standard
// Last-Event-ID header (or a lastEventId query parameter); events inside the
// broker's replay window are redelivered, anything older must be reconciled
// through the read APIs.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamEvents")
	defer span.End()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeInternalError(ctx, w)
		return
	}

	sinceSeq := parseLastEventID(r)

	// The server-wide write timeout would sever long-lived streams.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := h.broker.Subscribe(ctx, sinceSeq)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-ch:
			if !open {
				return
			}

			payload, err := sonic.Marshal(evt)
			if err != nil {
				h.logger.WarnContext(ctx, "encode event failed", "seq", evt.Seq, "error", err)
				continue
			}

			buf := bytebufferpool.Get()
			_, _ = buf.WriteString("id: ")
			_, _ = buf.WriteString(strconv.FormatUint(evt.Seq, 10))
			_, _ = buf.WriteString("\nevent: ")
			_, _ = buf.WriteString(string(evt.Type))
			_, _ = buf.WriteString("\ndata: ")
			_, _ = buf.Write(payload)
			_, _ = buf.WriteString("\n\n")

			_, writeErr := w.Write(buf.B)
			bytebufferpool.Put(buf)
			if writeErr != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func parseLastEventID(r *http.Request) uint64 {
	raw := strings.TrimSpace(r.Header.Get("Last-Event-ID"))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("lastEventId"))
	}
	if raw == "" {
		return 0
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return seq
}
