package wizard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/julzedz/pbs-frontend/internal/client/jsonapi"
	"github.com/julzedz/pbs-frontend/internal/client/nav"
)

type fakeBackend struct {
	localityCalls []string
	created       []struct {
		contentType string
		body        []byte
	}
	createErr error
}

func (f *fakeBackend) States(context.Context) (*jsonapi.ListDocument, error) {
	return &jsonapi.ListDocument{Data: []jsonapi.Resource{
		{ID: "25", Type: "state"}, {ID: "26", Type: "state"},
	}}, nil
}

func (f *fakeBackend) Features(context.Context) (*jsonapi.ListDocument, error) {
	var data []jsonapi.Resource
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		data = append(data, jsonapi.Resource{ID: id, Type: "feature"})
	}
	return &jsonapi.ListDocument{Data: data}, nil
}

func (f *fakeBackend) Localities(_ context.Context, stateID string) (*jsonapi.ListDocument, error) {
	f.localityCalls = append(f.localityCalls, stateID)
	return &jsonapi.ListDocument{Data: []jsonapi.Resource{{ID: "4", Type: "locality"}}}, nil
}

func (f *fakeBackend) CreateProperty(_ context.Context, contentType string, body io.Reader) (*jsonapi.SingleDocument, error) {
	b, _ := io.ReadAll(body)
	f.created = append(f.created, struct {
		contentType string
		body        []byte
	}{contentType, b})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &jsonapi.SingleDocument{Data: jsonapi.Resource{ID: "9", Type: "property"}}, nil
}

type recordingNotifier struct {
	successes, failures []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.failures = append(n.failures, msg) }

func fillAddress(w *Wizard, t *testing.T) {
	t.Helper()
	w.Form.Title = "3 Bed Flat"
	w.Form.Purpose = "rent"
	if err := w.SetState(context.Background(), "25"); err != nil {
		t.Fatal(err)
	}
	w.Form.LocalityID = "4"
	w.Form.Street = "12 Allen Ave"
	w.Form.PropertyType = "house"
}

func fillInfo(w *Wizard) {
	w.Form.Price = "950000"
	w.Form.Bedrooms = "3"
	w.Form.Bathrooms = "2"
	w.Form.Description = "Clean and serviced."
}

func pictureFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "house.jpg")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNextBlockedUntilStepValid(t *testing.T) {
	w := New(&fakeBackend{}, nil, nil)

	if w.Next() {
		t.Fatal("empty address step must not advance")
	}
	if w.Step() != StepAddress {
		t.Fatalf("step %d", w.Step())
	}
	if got := w.Errors()["title"]; got != "This field is required" {
		t.Fatalf("title error %q", got)
	}
	for _, field := range []string{"purpose", "state_id", "locality_id", "street", "property_type"} {
		if w.Errors()[field] == "" {
			t.Fatalf("missing error for %s", field)
		}
	}

	fillAddress(w, t)
	if !w.Next() {
		t.Fatalf("valid step refused: %v", w.Errors())
	}
	if w.Step() != StepInfo {
		t.Fatalf("step %d", w.Step())
	}
}

func TestCanAdvanceMatchesRequiredFields(t *testing.T) {
	w := New(&fakeBackend{}, nil, nil)

	if w.CanAdvance(StepAddress) {
		t.Fatal("empty step 0 cannot advance")
	}
	fillAddress(w, t)
	if !w.CanAdvance(StepAddress) {
		t.Fatal("filled step 0 must advance")
	}

	if w.CanAdvance(StepInfo) {
		t.Fatal("empty step 1 cannot advance")
	}
	fillInfo(w)
	// area_size, features, instagram link stay optional
	if !w.CanAdvance(StepInfo) {
		t.Fatal("filled step 1 must advance")
	}

	if w.CanAdvance(StepSubmit) {
		t.Fatal("no picture, no submit")
	}
	w.Form.PicturePath = pictureFile(t, "jpeg")
	if !w.CanAdvance(StepSubmit) {
		t.Fatal("picture set, submit step valid")
	}
}

func TestPrevAlwaysAllowed(t *testing.T) {
	w := New(&fakeBackend{}, nil, nil)
	fillAddress(w, t)
	w.Next()
	w.Prev()
	if w.Step() != StepAddress {
		t.Fatalf("step %d", w.Step())
	}
	w.Prev() // at the first step already
	if w.Step() != StepAddress {
		t.Fatalf("step %d", w.Step())
	}
}

func TestJumpRules(t *testing.T) {
	w := New(&fakeBackend{}, nil, nil)

	if w.Jump(StepSubmit) {
		t.Fatal("forward jump over invalid steps must refuse")
	}
	if w.Step() != StepAddress {
		t.Fatalf("step %d", w.Step())
	}
	if len(w.Errors()) == 0 {
		t.Fatal("refused jump must set errors for the first invalid step")
	}

	fillAddress(w, t)
	fillInfo(w)
	if !w.Jump(StepSubmit) {
		t.Fatalf("jump refused: %v", w.Errors())
	}
	if w.Step() != StepSubmit {
		t.Fatalf("step %d", w.Step())
	}

	// backward jump needs no validity
	w.Form.Title = ""
	if !w.Jump(StepAddress) {
		t.Fatal("backward jump must always work")
	}
}

func TestLocalityCascade(t *testing.T) {
	backend := &fakeBackend{}
	w := New(backend, nil, nil)

	if err := w.SetState(context.Background(), "25"); err != nil {
		t.Fatal(err)
	}
	w.Form.LocalityID = "4"
	if len(w.Localities()) != 1 {
		t.Fatalf("localities %d", len(w.Localities()))
	}

	// changing state reloads localities and resets the selection
	if err := w.SetState(context.Background(), "26"); err != nil {
		t.Fatal(err)
	}
	if w.Form.LocalityID != "" {
		t.Fatalf("locality not reset: %q", w.Form.LocalityID)
	}
	if got := backend.localityCalls; len(got) != 2 || got[1] != "26" {
		t.Fatalf("locality calls %v", got)
	}

	// clearing state clears the options without a fetch
	if err := w.SetState(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if w.Localities() != nil || len(backend.localityCalls) != 2 {
		t.Fatal("clear must not fetch")
	}
}

func TestFeatureSelection(t *testing.T) {
	w := New(&fakeBackend{}, nil, nil)
	if err := w.Init(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := len(w.VisibleFeatures()); got != MaxFeaturesShown {
		t.Fatalf("visible %d", got)
	}
	w.ToggleShowAllFeatures()
	if got := len(w.VisibleFeatures()); got != 8 {
		t.Fatalf("visible after show more: %d", got)
	}
	w.ToggleShowAllFeatures()
	if got := len(w.VisibleFeatures()); got != MaxFeaturesShown {
		t.Fatalf("visible after show less: %d", got)
	}

	w.ToggleFeature("2")
	w.ToggleFeature("5")
	w.ToggleFeature("2") // unchecks
	if len(w.Form.FeatureIDs) != 1 || w.Form.FeatureIDs[0] != "5" {
		t.Fatalf("feature ids %v", w.Form.FeatureIDs)
	}
}

func decodeParts(t *testing.T, contentType string, body []byte) map[string][]string {
	t.Helper()
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatal(err)
	}
	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	parts := map[string][]string{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(p)
		parts[p.FormName()] = append(parts[p.FormName()], string(b))
	}
	return parts
}

func TestSubmitPayloadPartNames(t *testing.T) {
	backend := &fakeBackend{}
	notifier := &recordingNotifier{}
	var routes []string
	w := New(backend, notifier, nav.Func(func(r string) { routes = append(routes, r) }))

	fillAddress(w, t)
	fillInfo(w)
	w.Form.AreaSize = "450 sqm"
	w.Form.InstagramVideoLink = "https://instagram.com/p/abc"
	w.ToggleFeature("1")
	w.ToggleFeature("3")
	w.Form.PicturePath = pictureFile(t, "jpegbytes")

	if err := w.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(backend.created) != 1 {
		t.Fatalf("creates %d", len(backend.created))
	}
	parts := decodeParts(t, backend.created[0].contentType, backend.created[0].body)

	for key, want := range map[string]string{
		"property[title]":                "3 Bed Flat",
		"property[purpose]":              "rent",
		"property[state_id]":             "25",
		"property[locality_id]":          "4",
		"property[street]":               "12 Allen Ave",
		"property[property_type]":        "house",
		"property[price]":                "950000",
		"property[bedrooms]":             "3",
		"property[bathrooms]":            "2",
		"property[area_size]":            "450 sqm",
		"property[description]":          "Clean and serviced.",
		"property[instagram_video_link]": "https://instagram.com/p/abc",
	} {
		got := parts[key]
		if len(got) != 1 || got[0] != want {
			t.Fatalf("%s = %v want %q", key, got, want)
		}
	}
	if got := parts["property[feature_ids][]"]; len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("feature parts %v", got)
	}
	if got := parts["property[picture]"]; len(got) != 1 || got[0] != "jpegbytes" {
		t.Fatalf("picture part %v", got)
	}

	if len(notifier.successes) != 1 {
		t.Fatalf("success toasts %v", notifier.successes)
	}
	if len(routes) != 1 || routes[0] != nav.Dashboard {
		t.Fatalf("navigations %v", routes)
	}
}

func TestSubmitOptionalPartsOmitted(t *testing.T) {
	backend := &fakeBackend{}
	w := New(backend, nil, nil)
	fillAddress(w, t)
	fillInfo(w)
	w.Form.PicturePath = pictureFile(t, "x")

	if err := w.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	parts := decodeParts(t, backend.created[0].contentType, backend.created[0].body)
	for _, key := range []string{"property[area_size]", "property[instagram_video_link]", "property[feature_ids][]"} {
		if _, ok := parts[key]; ok {
			t.Fatalf("%s must be omitted when empty", key)
		}
	}
}

func TestSubmitReadsFileAtSubmitTime(t *testing.T) {
	backend := &fakeBackend{}
	w := New(backend, nil, nil)
	fillAddress(w, t)
	fillInfo(w)

	path := pictureFile(t, "first selection")
	w.Form.PicturePath = path
	// user re-selects: same path, new bytes on disk
	if err := os.WriteFile(path, []byte("second selection"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := w.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	parts := decodeParts(t, backend.created[0].contentType, backend.created[0].body)
	if got := parts["property[picture]"][0]; got != "second selection" {
		t.Fatalf("stale picture sent: %q", got)
	}
}

func TestSubmitWithoutPicture(t *testing.T) {
	w := New(&fakeBackend{}, nil, nil)
	fillAddress(w, t)
	fillInfo(w)

	if err := w.Submit(context.Background()); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid got %v", err)
	}
	if got := w.Errors()["picture"]; got != "This field is required" {
		t.Fatalf("picture error %q", got)
	}
}

func TestSubmitFailureRetainsForm(t *testing.T) {
	boom := errors.New("boom")
	backend := &fakeBackend{createErr: boom}
	notifier := &recordingNotifier{}
	w := New(backend, notifier, nil)
	fillAddress(w, t)
	fillInfo(w)
	w.Form.PicturePath = pictureFile(t, "x")

	if err := w.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}
	if len(notifier.failures) != 1 {
		t.Fatalf("failure toasts %v", notifier.failures)
	}
	// state kept for retry
	if w.Form.Title != "3 Bed Flat" || w.Form.PicturePath == "" {
		t.Fatal("form must be retained after failure")
	}

	backend.createErr = nil
	if err := w.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
}
