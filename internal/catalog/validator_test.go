package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"videocatalog/internal/catalog"
)

func TestValidate(t *testing.T) {
	validDesc := "A description"
	cases := []struct {
		name        string
		title       string
		description string
		wantKind    catalog.Kind
		wantField   string
		wantLimit   int
	}{
		{name: "valid", title: "Title", description: validDesc},
		{name: "title at limit", title: strings.Repeat("a", 255), description: validDesc},
		{name: "empty title", title: "", description: validDesc, wantKind: catalog.KindRequiredField, wantField: "Title"},
		{name: "blank title", title: " \t\n", description: validDesc, wantKind: catalog.KindRequiredField, wantField: "Title"},
		{name: "long title", title: strings.Repeat("a", 256), description: validDesc, wantKind: catalog.KindMaxLengthExceeded, wantField: "Title", wantLimit: 255},
		{name: "title checked first", title: "", description: "", wantKind: catalog.KindRequiredField, wantField: "Title"},
		{name: "empty description", title: "Title", description: "", wantKind: catalog.KindRequiredField, wantField: "Description"},
		{name: "description at limit", title: "Title", description: strings.Repeat("d", 4000)},
		{name: "long description", title: "Title", description: strings.Repeat("d", 4001), wantKind: catalog.KindMaxLengthExceeded, wantField: "Description", wantLimit: 4000},
		{name: "multibyte title counts code units", title: strings.Repeat("é", 255), description: validDesc},
		{name: "astral title over limit", title: strings.Repeat("🎬", 128), description: validDesc, wantKind: catalog.KindMaxLengthExceeded, wantField: "Title", wantLimit: 255},
		{name: "astral title at limit", title: strings.Repeat("🎬", 127) + "a", description: validDesc},
		{name: "astral description over limit", title: "Title", description: strings.Repeat("🎬", 2000) + "d", wantKind: catalog.KindMaxLengthExceeded, wantField: "Description", wantLimit: 4000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := catalog.NewVideo(tc.title, tc.description, 2000, false, false, 10, catalog.RatingL)
			err := v.Validate()
			if tc.wantKind == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var cerr *catalog.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *catalog.Error, got %T %v", err, err)
			}
			if cerr.Kind != tc.wantKind || cerr.Field != tc.wantField || cerr.Limit != tc.wantLimit {
				t.Fatalf("got %+v, want kind=%s field=%s limit=%d", cerr, tc.wantKind, tc.wantField, tc.wantLimit)
			}
			if cerr.ErrorKind() != "validation" {
				t.Fatalf("ErrorKind = %q", cerr.ErrorKind())
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	v := catalog.NewVideo("", "desc", 2000, false, false, 10, catalog.RatingL)
	before := v.State()
	_ = v.Validate()
	after := v.State()
	if before.Title != after.Title || before.Description != after.Description {
		t.Fatal("Validate changed the video")
	}
}

func TestErrorMatching(t *testing.T) {
	v := catalog.NewVideo(strings.Repeat("a", 256), "desc", 2000, false, false, 10, catalog.RatingL)
	err := v.Validate()

	if !errors.Is(err, catalog.ErrMaxLengthExceeded) {
		t.Fatal("expected to match ErrMaxLengthExceeded")
	}
	if !errors.Is(err, &catalog.Error{Kind: catalog.KindMaxLengthExceeded, Field: "Title", Limit: 255}) {
		t.Fatal("expected to match field and limit")
	}
	if errors.Is(err, &catalog.Error{Kind: catalog.KindMaxLengthExceeded, Field: "Description"}) {
		t.Fatal("should not match a different field")
	}
	if errors.Is(err, catalog.ErrRequiredField) {
		t.Fatal("should not match a different kind")
	}
	if err.Error() != "'Title' should be less or equal 255 characters long" {
		t.Fatalf("message = %q", err.Error())
	}
	if catalog.ErrMediaNotPresent.ErrorKind() != "not_found" {
		t.Fatal("media not present should classify as not_found")
	}
}
