// Package wizard is the three-step property posting form machine: Address,
// Info, Submit. Forward movement requires the current step to validate;
// backward movement is always allowed.
package wizard

import (
	"context"
	"errors"
	"io"

	"github.com/julzedz/pbs-frontend/internal/client/jsonapi"
	"github.com/julzedz/pbs-frontend/internal/client/nav"
	"github.com/julzedz/pbs-frontend/internal/client/toast"
)

const (
	StepAddress = 0
	StepInfo    = 1
	StepSubmit  = 2

	stepCount = 3

	// MaxFeaturesShown is how many features show before "Show more".
	MaxFeaturesShown = 6

	requiredMsg = "This field is required"
)

// ErrInvalid is returned when a submit is attempted with a missing picture
// (or, via Next/Jump, when a step fails validation).
var ErrInvalid = errors.New("wizard: step is not valid")

// Form is the property draft being assembled.
type Form struct {
	Title              string
	Purpose            string
	StateID            string
	LocalityID         string
	Street             string
	PropertyType       string
	Price              string
	Bedrooms           string
	Bathrooms          string
	AreaSize           string
	Description        string
	InstagramVideoLink string
	FeatureIDs         []string
	// PicturePath is deliberately a path, not file contents: the file is
	// opened at submit time so a re-selected picture is never lost.
	PicturePath string
}

// Backend is the slice of the API surface the wizard needs.
type Backend interface {
	States(ctx context.Context) (*jsonapi.ListDocument, error)
	Features(ctx context.Context) (*jsonapi.ListDocument, error)
	Localities(ctx context.Context, stateID string) (*jsonapi.ListDocument, error)
	CreateProperty(ctx context.Context, contentType string, body io.Reader) (*jsonapi.SingleDocument, error)
}

// Wizard holds the form, the current step, and the loaded reference data.
type Wizard struct {
	Form Form

	backend   Backend
	notifier  toast.Notifier
	navigator nav.Navigator

	step       int
	errors     map[string]string
	states     []jsonapi.Resource
	features   []jsonapi.Resource
	localities []jsonapi.Resource
	showAll    bool
}

func New(backend Backend, notifier toast.Notifier, navigator nav.Navigator) *Wizard {
	if notifier == nil {
		notifier = toast.Nop
	}
	if navigator == nil {
		navigator = nav.Nop
	}
	return &Wizard{
		backend:   backend,
		notifier:  notifier,
		navigator: navigator,
		errors:    map[string]string{},
	}
}

// Init loads states and features.
func (w *Wizard) Init(ctx context.Context) error {
	states, err := w.backend.States(ctx)
	if err != nil {
		return err
	}
	features, err := w.backend.Features(ctx)
	if err != nil {
		return err
	}
	w.states = states.Data
	w.features = features.Data
	return nil
}

func (w *Wizard) Step() int                  { return w.step }
func (w *Wizard) Errors() map[string]string  { return w.errors }
func (w *Wizard) States() []jsonapi.Resource { return w.states }

// Localities returns the options loaded for the currently selected state.
func (w *Wizard) Localities() []jsonapi.Resource { return w.localities }

// SetState selects a state, loads its localities, and resets the locality
// choice. An empty id clears both.
func (w *Wizard) SetState(ctx context.Context, stateID string) error {
	w.Form.StateID = stateID
	w.Form.LocalityID = ""
	if stateID == "" {
		w.localities = nil
		return nil
	}
	doc, err := w.backend.Localities(ctx, stateID)
	if err != nil {
		w.localities = nil
		return err
	}
	w.localities = doc.Data
	return nil
}

// ToggleFeature adds the id to the selection, or removes it when already
// selected. The selection never holds duplicates.
func (w *Wizard) ToggleFeature(id string) {
	for i, fid := range w.Form.FeatureIDs {
		if fid == id {
			w.Form.FeatureIDs = append(w.Form.FeatureIDs[:i], w.Form.FeatureIDs[i+1:]...)
			return
		}
	}
	w.Form.FeatureIDs = append(w.Form.FeatureIDs, id)
}

// VisibleFeatures windows the feature list to the first six until "Show
// more" has been toggled.
func (w *Wizard) VisibleFeatures() []jsonapi.Resource {
	if w.showAll || len(w.features) <= MaxFeaturesShown {
		return w.features
	}
	return w.features[:MaxFeaturesShown]
}

// ToggleShowAllFeatures flips the Show more / Show less state.
func (w *Wizard) ToggleShowAllFeatures() { w.showAll = !w.showAll }

// requiredFields lists the per-step required field names, keyed the way the
// error map reports them.
func (w *Wizard) requiredFields(step int) map[string]string {
	switch step {
	case StepAddress:
		return map[string]string{
			"title":         w.Form.Title,
			"purpose":       w.Form.Purpose,
			"state_id":      w.Form.StateID,
			"locality_id":   w.Form.LocalityID,
			"street":        w.Form.Street,
			"property_type": w.Form.PropertyType,
		}
	case StepInfo:
		return map[string]string{
			"price":       w.Form.Price,
			"bedrooms":    w.Form.Bedrooms,
			"bathrooms":   w.Form.Bathrooms,
			"description": w.Form.Description,
		}
	case StepSubmit:
		return map[string]string{
			"picture": w.Form.PicturePath,
		}
	}
	return nil
}

// CanAdvance reports whether every required field of the step is filled.
// Pure: never touches the error map.
func (w *Wizard) CanAdvance(step int) bool {
	for _, v := range w.requiredFields(step) {
		if v == "" {
			return false
		}
	}
	return true
}

// validate fills the error map for one step and reports validity.
func (w *Wizard) validate(step int) bool {
	errs := map[string]string{}
	for name, v := range w.requiredFields(step) {
		if v == "" {
			errs[name] = requiredMsg
		}
	}
	w.errors = errs
	return len(errs) == 0
}

// Next advances one step when the current one validates; otherwise errors
// are set and the step stays.
func (w *Wizard) Next() bool {
	if !w.validate(w.step) {
		return false
	}
	if w.step < stepCount-1 {
		w.step++
	}
	return true
}

// Prev moves back one step. Always permitted.
func (w *Wizard) Prev() {
	if w.step > 0 {
		w.step--
	}
}

// Jump moves directly to step k: backward always, forward only when every
// step before k validates. On refusal the first invalid step's errors are
// set and the position stays.
func (w *Wizard) Jump(k int) bool {
	if k < 0 || k >= stepCount || k == w.step {
		return k == w.step
	}
	if k < w.step {
		w.step = k
		return true
	}
	for s := 0; s < k; s++ {
		if !w.CanAdvance(s) {
			w.validate(s)
			return false
		}
	}
	w.step = k
	return true
}

// Submit validates the final step, serializes the multipart payload, and
// posts it. Success notifies and navigates to the dashboard; failure
// notifies and keeps the form for retry.
func (w *Wizard) Submit(ctx context.Context) error {
	if !w.validate(StepSubmit) {
		return ErrInvalid
	}
	contentType, body, err := EncodePayload(w.Form)
	if err != nil {
		w.notifier.Error("Failed to post property.")
		return err
	}
	if _, err := w.backend.CreateProperty(ctx, contentType, body); err != nil {
		w.notifier.Error("Failed to post property.")
		return err
	}
	w.notifier.Success("Property posted successfully!")
	w.navigator.To(nav.Dashboard)
	return nil
}
