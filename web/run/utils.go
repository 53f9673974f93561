package webapp

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// layerOption is one entry of the background layer toggle, in display order.
type layerOption struct {
	Kind  string
	Label string
}

func (webapp *WebApp) newTplData() map[string]any {
	data := make(map[string]any)
	data["Loaded"] = webapp.Session.Loaded()
	data["Folders"] = webapp.Session.Folders()
	data["Tags"] = webapp.Config.Annotator.Tags
	data["DataDir"] = webapp.Config.Dataset.DataDir
	data["MaxCanvasWidth"] = webapp.Config.Annotator.MaxCanvasWidth

	if t, err := webapp.Store.LastScan(); err == nil && !t.IsZero() {
		data["LastScan"] = t.Format(time.RFC1123)
	}
	return data
}

// decodeMaskDataURL strips the data URL prefix the canvas posts and decodes
// the base64 PNG payload. An empty value means nothing was drawn.
func decodeMaskDataURL(v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(v, prefix) {
		return nil, fmt.Errorf("unexpected mask payload format")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(v, prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode mask payload: %w", err)
	}
	return data, nil
}
