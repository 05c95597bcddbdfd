package telegram

import (
	"fmt"
	"strings"

	"github.com/flemzord/tgdispatch/pkg/imaging"
)

// InputMedia is one element of a sendMediaGroup "media" array.
type InputMedia struct {
	Type      string `json:"type"` // "photo" or "document"
	Media     string `json:"media"`
	Caption   string `json:"caption,omitempty"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// AttachmentName returns the payload-map key this item references,
// or "" if the item does not use an attach:// reference.
func (m InputMedia) AttachmentName() string {
	return strings.TrimPrefix(m.Media, "attach://")
}

// BuildMediaGroup encodes images into a wire-ready media group: one
// InputMedia per image plus the attachment payloads keyed by name.
// Attachment names are index-based ("img0.png", "img1.png", ...) in input
// order, so the attach:// reference and the payload key always agree.
// A non-empty caption is attached to the first item only, with HTML parse
// mode; Telegram takes a media group's caption from its first element.
// Encoding failures surface before any payload is assembled for the
// failing image, and no partial group is returned.
func BuildMediaGroup(images []imaging.Image, caption string, asDocument bool) ([]InputMedia, map[string][]byte, error) {
	kind := "photo"
	if asDocument {
		kind = "document"
	}

	media := make([]InputMedia, 0, len(images))
	files := make(map[string][]byte, len(images))

	for idx, img := range images {
		data, err := img.EncodePNG()
		if err != nil {
			return nil, nil, fmt.Errorf("telegram: encode image %d: %w", idx, err)
		}

		name := fmt.Sprintf("img%d.png", idx)
		item := InputMedia{
			Type:  kind,
			Media: "attach://" + name,
		}
		if idx == 0 && caption != "" {
			item.Caption = caption
			item.ParseMode = parseMode
		}

		media = append(media, item)
		files[name] = data
	}

	return media, files, nil
}
