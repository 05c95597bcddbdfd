package telegram

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/flemzord/tgdispatch/pkg/imaging"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestBuildMediaGroup(t *testing.T) {
	images := []imaging.Image{testImage(), testImage(), testImage()}

	media, files, err := BuildMediaGroup(images, "a <b>caption</b>", false)
	if err != nil {
		t.Fatalf("BuildMediaGroup: %v", err)
	}

	if len(media) != 3 {
		t.Fatalf("len(media) = %d, want 3", len(media))
	}
	if len(files) != 3 {
		t.Fatalf("len(files) = %d, want 3", len(files))
	}

	for i, item := range media {
		wantName := fmt.Sprintf("img%d.png", i)
		if item.Media != "attach://"+wantName {
			t.Errorf("media[%d].Media = %q, want %q", i, item.Media, "attach://"+wantName)
		}
		if item.AttachmentName() != wantName {
			t.Errorf("media[%d].AttachmentName() = %q, want %q", i, item.AttachmentName(), wantName)
		}
		if item.Type != "photo" {
			t.Errorf("media[%d].Type = %q, want %q", i, item.Type, "photo")
		}

		data, ok := files[wantName]
		if !ok {
			t.Fatalf("payload %q missing", wantName)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("payload %q is not PNG", wantName)
		}
	}
}

func TestBuildMediaGroupCaptionOnFirstOnly(t *testing.T) {
	images := []imaging.Image{testImage(), testImage()}

	media, _, err := BuildMediaGroup(images, "hello", false)
	if err != nil {
		t.Fatalf("BuildMediaGroup: %v", err)
	}

	if media[0].Caption != "hello" {
		t.Errorf("media[0].Caption = %q, want %q", media[0].Caption, "hello")
	}
	if media[0].ParseMode != "HTML" {
		t.Errorf("media[0].ParseMode = %q, want HTML", media[0].ParseMode)
	}
	if media[1].Caption != "" || media[1].ParseMode != "" {
		t.Errorf("media[1] carries caption %q/%q, want none", media[1].Caption, media[1].ParseMode)
	}
}

func TestBuildMediaGroupEmptyCaption(t *testing.T) {
	media, _, err := BuildMediaGroup([]imaging.Image{testImage()}, "", false)
	if err != nil {
		t.Fatalf("BuildMediaGroup: %v", err)
	}
	if media[0].Caption != "" || media[0].ParseMode != "" {
		t.Errorf("empty caption still attached: %q/%q", media[0].Caption, media[0].ParseMode)
	}
}

func TestBuildMediaGroupDocumentKind(t *testing.T) {
	media, _, err := BuildMediaGroup([]imaging.Image{testImage(), testImage()}, "", true)
	if err != nil {
		t.Fatalf("BuildMediaGroup: %v", err)
	}
	for i, item := range media {
		if item.Type != "document" {
			t.Errorf("media[%d].Type = %q, want document", i, item.Type)
		}
	}
}

func TestBuildMediaGroupEncodingError(t *testing.T) {
	bad := imaging.Image{Width: 4, Height: 4, Pix: make([]float32, 1)}

	_, _, err := BuildMediaGroup([]imaging.Image{testImage(), bad}, "", false)
	if err == nil {
		t.Fatal("expected encoding error")
	}
}
