package presetreq

import (
	"maps"
	"net/http"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/utils"
)

// Request is a mutable builder created from a Template. Chain methods mutate
// and return the same instance. A Request must not be used from several
// goroutines at once; create one per in-flight call.
type Request struct {
	URL    string
	Method string
	// Message caller annotation, not sent
	Message any

	tpl        *Template
	headers    map[string]headerValue
	status     map[string]dto.StatusRule
	callbacks  *linkedhashmap.Map
	transforms []TransformFunc
	prepares   []PrepareFunc
	format     dto.Format
}

// reset restores the instance to fresh copies of its template.
func (r *Request) reset() {
	t := r.tpl
	r.URL = ""
	r.Method = ""
	r.Message = nil
	r.format = dto.FormatRaw
	r.headers = maps.Clone(t.headers)
	r.status = maps.Clone(t.status)
	r.callbacks = linkedhashmap.New()
	copyCallbacks(r.callbacks, t.callbacks)
	r.transforms = slices.Clone(t.transforms)
	r.prepares = slices.Clone(t.prepares)
}

func (r *Request) Get(url string, params ...any) *Request {
	return r.target(http.MethodGet, url, params)
}

func (r *Request) Post(url string, params ...any) *Request {
	return r.target(http.MethodPost, url, params)
}

func (r *Request) Put(url string, params ...any) *Request {
	return r.target(http.MethodPut, url, params)
}

func (r *Request) Patch(url string, params ...any) *Request {
	return r.target(http.MethodPatch, url, params)
}

func (r *Request) Delete(url string, params ...any) *Request {
	return r.target(http.MethodDelete, url, params)
}

// target sets method and URL. A mapping as first param is appended as the
// query string; anything else is ignored.
func (r *Request) target(method, url string, params []any) *Request {
	r.Method = method
	r.URL = url
	if len(params) == 0 || params[0] == nil {
		return r
	}
	if qs, err := utils.QueryString(params[0]); err == nil && qs != "" {
		r.URL += "?" + qs
	}
	return r
}

// Headers shallow-merges static header values.
func (r *Request) Headers(headers map[string]string) *Request {
	for k, v := range headers {
		r.headers[http.CanonicalHeaderKey(k)] = headerValue{static: v}
	}
	return r
}

// HeaderFunc sets a header computed from the outgoing body at send time.
func (r *Request) HeaderFunc(key string, fn HeaderFunc) *Request {
	if fn == nil {
		return r
	}
	r.headers[http.CanonicalHeaderKey(key)] = headerValue{fn: fn}
	return r
}

// Status shallow-merges status rules keyed by callback name.
func (r *Request) Status(rules map[string]dto.StatusRule) *Request {
	maps.Copy(r.status, rules)
	return r
}

// On registers or replaces the callback for a status rule name.
func (r *Request) On(name string, fn Callback) *Request {
	if fn == nil {
		r.callbacks.Remove(name)
		return r
	}
	r.callbacks.Put(name, fn)
	return r
}

func (r *Request) Descr(message any) *Request {
	r.Message = message
	return r
}

// Header returns the current value of a header, evaluating a HeaderFunc
// with a nil body.
func (r *Request) Header(key string) string {
	h, ok := r.headers[http.CanonicalHeaderKey(key)]
	if !ok {
		return ""
	}
	return h.eval(nil)
}

func (r *Request) hasHeader(key string) bool {
	_, ok := r.headers[http.CanonicalHeaderKey(key)]
	return ok
}

func (r *Request) StatusRule(name string) (dto.StatusRule, bool) {
	rule, ok := r.status[name]
	return rule, ok
}

// Callbacks lists registered callback names in registration order.
func (r *Request) Callbacks() []string {
	names := make([]string, 0, r.callbacks.Size())
	for _, k := range r.callbacks.Keys() {
		names = append(names, k.(string))
	}
	return names
}

// Format is the serialization of the send in progress, FormatRaw otherwise.
func (r *Request) Format() dto.Format {
	return r.format
}

// Template returns the template the request was created from.
func (r *Request) Template() *Template {
	return r.tpl
}

// Preset captures the request's current headers, rules, callbacks and
// stages as a new template. URL, method and message are not captured.
func (r *Request) Preset() *Template {
	t := &Template{
		headers:    maps.Clone(r.headers),
		status:     maps.Clone(r.status),
		callbacks:  linkedhashmap.New(),
		transforms: slices.Clone(r.transforms),
		prepares:   slices.Clone(r.prepares),
		dispatcher: r.tpl.dispatcher,
	}
	copyCallbacks(t.callbacks, r.callbacks)
	return t
}
