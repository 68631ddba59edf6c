package flows

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/forms"
)

var (
	ErrPhotoLimit    = errors.New("flows: photo limit reached")
	ErrPhotoTooLarge = errors.New("flows: photo too large")
)

type IncidentAPI interface {
	Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.IncidentReport, error)
}

type IncidentState interface{ incidentState() }

// IncidentDraft is the form being filled in.
type IncidentDraft struct {
	Form forms.Incident
}

type IncidentSubmitted struct {
	Report    domain.IncidentReport
	Reference string
}

func (IncidentDraft) incidentState()     {}
func (IncidentSubmitted) incidentState() {}

type IncidentFlow struct {
	api  IncidentAPI
	opts options

	mu    sync.Mutex
	state IncidentState
}

func NewIncidentFlow(api IncidentAPI, opts ...Option) *IncidentFlow {
	return &IncidentFlow{api: api, opts: buildOptions(opts), state: IncidentDraft{}}
}

func (f *IncidentFlow) State() IncidentState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// edit applies fn to the draft; anything else is an invalid transition.
func (f *IncidentFlow) edit(fn func(*forms.Incident) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.state.(IncidentDraft)
	if !ok {
		return ErrInvalidTransition
	}
	if err := fn(&d.Form); err != nil {
		return err
	}
	f.state = d
	return nil
}

func (f *IncidentFlow) SetCategory(category string) error {
	return f.edit(func(in *forms.Incident) error { in.Category = category; return nil })
}

func (f *IncidentFlow) SetDescription(text string) error {
	return f.edit(func(in *forms.Incident) error { in.Description = text; return nil })
}

func (f *IncidentFlow) SetLocationName(name string) error {
	return f.edit(func(in *forms.Incident) error { in.LocationName = name; return nil })
}

func (f *IncidentFlow) SetAnonymous(anonymous bool) error {
	return f.edit(func(in *forms.Incident) error { in.IsAnonymous = anonymous; return nil })
}

func (f *IncidentFlow) SetContact(wants bool, phone string) error {
	return f.edit(func(in *forms.Incident) error {
		in.WantsContact = wants
		in.ContactPhone = phone
		return nil
	})
}

func (f *IncidentFlow) AddPhoto(photo []byte) error {
	if len(photo) > domain.MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	return f.edit(func(in *forms.Incident) error {
		if len(in.Photos) >= domain.MaxIncidentPhotos {
			return ErrPhotoLimit
		}
		in.Photos = append(in.Photos[:len(in.Photos):len(in.Photos)], photo)
		return nil
	})
}

func (f *IncidentFlow) RemovePhoto(i int) error {
	return f.edit(func(in *forms.Incident) error {
		if i < 0 || i >= len(in.Photos) {
			return ErrInvalidTransition
		}
		photos := make([][]byte, 0, len(in.Photos)-1)
		photos = append(photos, in.Photos[:i]...)
		in.Photos = append(photos, in.Photos[i+1:]...)
		return nil
	})
}

func (f *IncidentFlow) Submit(ctx context.Context) error {
	f.mu.Lock()
	d, ok := f.state.(IncidentDraft)
	f.mu.Unlock()
	if !ok {
		return ErrInvalidTransition
	}
	if err := forms.ValidateIncident(d.Form, f.opts.requireContactPhone); err != nil {
		return err
	}

	pos := f.opts.position(ctx)
	req := domain.CreateIncidentRequest{
		IncidentType: d.Form.Category,
		Lat:          pos.Lat,
		Lng:          pos.Lng,
		Description:  strings.TrimSpace(d.Form.Description),
		Photos:       d.Form.Photos,
		IsAnonymous:  d.Form.IsAnonymous,
		WantsContact: d.Form.WantsContact,
	}
	if name := strings.TrimSpace(d.Form.LocationName); name != "" {
		req.LocationName = &name
	}
	if phone := strings.TrimSpace(d.Form.ContactPhone); d.Form.WantsContact && phone != "" {
		req.ContactPhone = &phone
	}

	report, err := f.api.Create(ctx, req)
	if err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Report not submitted", Message: client.DetailOf(err)})
		return err
	}

	ref := domain.ReferenceCode(report.ID)
	f.mu.Lock()
	f.state = IncidentSubmitted{Report: *report, Reference: ref}
	f.mu.Unlock()

	f.opts.logger.Info("incident reported", slog.String("reference", ref))
	f.opts.notifier.Notify(Notice{Level: NoticeInfo, Title: "Report submitted", Message: "Reference #" + ref})
	return nil
}

// Reset starts a fresh draft.
func (f *IncidentFlow) Reset() {
	f.mu.Lock()
	f.state = IncidentDraft{}
	f.mu.Unlock()
}
