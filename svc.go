package presetreq

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/joy-dx/lockablemap"
	"github.com/joy-dx/presetreq/config"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/relays"
	relayDTO "github.com/joy-dx/relay/dto"
)

const NetSvcRef = "net.svc"

// NetSvc routes outgoing requests to a transport by URL scheme and keeps a
// registry of named templates.
type NetSvc struct {
	cfg            *config.NetSvcConfig
	relay          relayDTO.RelayInterface
	muTransports   sync.RWMutex
	transports     map[string]dto.Transport
	root           *Template
	templates      *lockablemap.LockableMap[string, *Template]
	requestState   *lockablemap.LockableMap[string, dto.RequestNotification]
	muListeners    sync.Mutex
	listenersByURL map[string][]chan dto.RequestNotification
}

func (s *NetSvc) Ref() string {
	return NetSvcRef
}

// RegisterTransport serves every URL with the given scheme through t.
func (s *NetSvc) RegisterTransport(scheme string, t dto.Transport) {
	s.muTransports.Lock()
	defer s.muTransports.Unlock()
	s.transports[strings.ToLower(scheme)] = t
}

func (s *NetSvc) transportFor(rawURL string) (dto.Transport, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	s.muTransports.RLock()
	defer s.muTransports.RUnlock()
	t, ok := s.transports[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("%w for scheme %q", ErrNoTransport, u.Scheme)
	}
	return t, nil
}

// Send implements dto.Transport for templates built on the service.
func (s *NetSvc) Send(ctx context.Context, out *dto.Outgoing) (dto.Response, error) {
	if out == nil {
		return dto.Response{}, errors.New("nil outgoing request")
	}
	t, err := s.transportFor(out.URL)
	if err != nil {
		return dto.Response{}, err
	}
	return t.Send(ctx, out)
}

// Root is the service's default template: no headers, rules or stages.
func (s *NetSvc) Root() *Template {
	return s.root
}

// RegisterTemplate names a template so it can be looked up later.
func (s *NetSvc) RegisterTemplate(name string, t *Template) {
	s.templates.Set(name, t)
}

func (s *NetSvc) Template(name string) (*Template, error) {
	t, ok := s.templates.GetAll()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

// Preset derives a template from the root and registers it under name.
func (s *NetSvc) Preset(name string, spec PresetSpec) *Template {
	t := s.root.Preset(spec)
	s.RegisterTemplate(name, t)
	return t
}

// LoadPresets registers every preset of the file in order. attach supplies
// the code-only parts (callbacks, stages, header functions) per preset name
// and is merged over the declarative definition.
func (s *NetSvc) LoadPresets(file *config.PresetFile, attach map[string]PresetSpec) error {
	if file == nil {
		return errors.New("nil preset file")
	}
	if err := file.Validate(); err != nil {
		return err
	}
	for _, def := range file.Presets {
		parent := s.root
		if def.Parent != "" {
			p, err := s.Template(def.Parent)
			if err != nil {
				return fmt.Errorf("preset %q: %w", def.Name, err)
			}
			parent = p
		}
		spec, err := specFromDefinition(def, attach[def.Name])
		if err != nil {
			return err
		}
		s.RegisterTemplate(def.Name, parent.Preset(spec))
		s.relay.Debug(relays.RlyNetLog{Msg: "Preset registered: " + def.Name})
	}
	return nil
}

func specFromDefinition(def config.PresetDefinition, code PresetSpec) (PresetSpec, error) {
	prepareStrategy, err := dto.ParseMergeStrategy(def.PrepareMergeStrategy)
	if err != nil {
		return PresetSpec{}, fmt.Errorf("preset %q: %w", def.Name, err)
	}
	sendStrategy, err := dto.ParseMergeStrategy(def.SendMergeStrategy)
	if err != nil {
		return PresetSpec{}, fmt.Errorf("preset %q: %w", def.Name, err)
	}

	spec := code
	spec.Headers = make(map[string]string, len(def.Headers)+len(code.Headers))
	for k, v := range def.Headers {
		spec.Headers[k] = v
	}
	for k, v := range code.Headers {
		spec.Headers[k] = v
	}
	spec.Status = make(map[string]dto.StatusRule, len(def.Status)+len(code.Status))
	for k, v := range def.Status {
		spec.Status[k] = v
	}
	for k, v := range code.Status {
		spec.Status[k] = v
	}
	if code.PrepareMergeStrategy == "" {
		spec.PrepareMergeStrategy = prepareStrategy
	}
	if code.SendMergeStrategy == "" {
		spec.SendMergeStrategy = sendStrategy
	}
	return spec, nil
}

// ObserveRequest records dispatcher notifications and fans them out to listeners.
func (s *NetSvc) ObserveRequest(n dto.RequestNotification) {
	s.publishRequestUpdate(n)
}

// RequestListener returns a channel of updates for requests to a particular URL
func (s *NetSvc) RequestListener(targetURL string) (<-chan dto.RequestNotification, func()) {
	s.muListeners.Lock()
	defer s.muListeners.Unlock()

	ch := make(chan dto.RequestNotification, 10)
	s.listenersByURL[targetURL] = append(s.listenersByURL[targetURL], ch)

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.muListeners.Lock()
			defer s.muListeners.Unlock()

			chans := s.listenersByURL[targetURL]
			if !slices.Contains(chans, ch) {
				// already closed by RequestListenerClose
				return
			}
			out := chans[:0]
			for _, c := range chans {
				if c != ch {
					out = append(out, c)
				}
			}
			if len(out) == 0 {
				delete(s.listenersByURL, targetURL)
			} else {
				s.listenersByURL[targetURL] = out
			}
			close(ch)
		})
	}

	return ch, unsub
}

// RequestListenerClose closes all channels for a given URL manually
func (s *NetSvc) RequestListenerClose(targetURL string) {
	s.muListeners.Lock()
	defer s.muListeners.Unlock()
	if chans, ok := s.listenersByURL[targetURL]; ok {
		for _, c := range chans {
			close(c)
		}
		delete(s.listenersByURL, targetURL)
	}
}
