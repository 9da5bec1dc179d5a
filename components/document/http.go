package document

import (
	"io"
	"net/http"

	"go.uber.org/atomic"
)

// Http fetches a document over HTTP into the buffer.
type Http struct {
	status  *atomic.Int32
	client  *http.Client
	httpReq *http.Request
	Document
}

var _ ReadableDocument = (*Http)(nil)

type HttpConfig struct {
	client  *http.Client
	link    string
	method  string
	payload io.Reader
}

type HttpOption func(*HttpConfig)

func WithHttpMethod(method string) HttpOption {
	return func(h *HttpConfig) {
		h.method = method
	}
}

func WithHttpURL(link string) HttpOption {
	return func(h *HttpConfig) {
		h.link = link
	}
}

func WithPayload(payload io.Reader) HttpOption {
	return func(h *HttpConfig) {
		h.payload = payload
	}
}

func WithHttpClient(client *http.Client) HttpOption {
	return func(h *HttpConfig) {
		h.client = client
	}
}

func NewHttp(opts ...HttpOption) (*Http, error) {
	var cfg HttpConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.method == "" {
		cfg.method = http.MethodGet
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	httpReq, err := http.NewRequest(cfg.method, cfg.link, cfg.payload)
	if err != nil {
		return nil, err
	}
	return &Http{
		status:  atomic.NewInt32(Unread),
		client:  cfg.client,
		httpReq: httpReq,
		Document: New(map[string]string{
			"url":    cfg.link,
			"method": cfg.method,
		}),
	}, nil
}

func (h *Http) ReadStatus() ReadStatus {
	return h.status.Load()
}

// ReadAll fetches the document body. Repeated calls after a completed fetch
// are no-ops.
func (h *Http) ReadAll() error {
	if !h.status.CompareAndSwap(Unread, Reading) {
		if h.status.Load() == ReadCompleted {
			return nil
		}
		return ErrReading
	}
	httpResp, err := h.client.Do(h.httpReq)
	if err != nil {
		h.status.Store(Unread)
		return err
	}
	defer httpResp.Body.Close()
	if _, err = io.Copy(h.Buffer(), httpResp.Body); err != nil {
		h.Buffer().Reset()
		h.status.Store(Unread)
		return err
	}
	h.status.Store(ReadCompleted)
	return nil
}
