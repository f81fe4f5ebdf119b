package wizard

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// EncodePayload serializes the draft as the multipart body the backend's
// create endpoint expects, with every part keyed under property[...]. The
// picture is read from disk here, at submit time, so the bytes sent always
// match the user's latest selection.
func EncodePayload(f Form) (contentType string, body *bytes.Buffer, err error) {
	body = &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fields := []struct{ key, val string }{
		{"property[title]", f.Title},
		{"property[purpose]", f.Purpose},
		{"property[state_id]", f.StateID},
		{"property[locality_id]", f.LocalityID},
		{"property[street]", f.Street},
		{"property[property_type]", f.PropertyType},
		{"property[price]", f.Price},
		{"property[bedrooms]", f.Bedrooms},
		{"property[bathrooms]", f.Bathrooms},
	}
	for _, fld := range fields {
		if err := mw.WriteField(fld.key, fld.val); err != nil {
			return "", nil, err
		}
	}
	if f.AreaSize != "" {
		if err := mw.WriteField("property[area_size]", f.AreaSize); err != nil {
			return "", nil, err
		}
	}
	if err := mw.WriteField("property[description]", f.Description); err != nil {
		return "", nil, err
	}
	if f.InstagramVideoLink != "" {
		if err := mw.WriteField("property[instagram_video_link]", f.InstagramVideoLink); err != nil {
			return "", nil, err
		}
	}
	for _, id := range f.FeatureIDs {
		if err := mw.WriteField("property[feature_ids][]", id); err != nil {
			return "", nil, err
		}
	}

	file, err := os.Open(f.PicturePath)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()
	part, err := mw.CreateFormFile("property[picture]", filepath.Base(f.PicturePath))
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", nil, err
	}

	if err := mw.Close(); err != nil {
		return "", nil, err
	}
	return mw.FormDataContentType(), body, nil
}
