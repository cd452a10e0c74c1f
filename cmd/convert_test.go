package cmd

import (
	"testing"

	"squish/internal/transform"
)

func TestTargetResolution(t *testing.T) {
	cases := []struct {
		name               string
		widthSet, heightSet bool
		width, height      int
		want               *transform.Resolution
		wantErr            bool
	}{
		{name: "neither flag keeps original", want: nil},
		{name: "both flags", widthSet: true, heightSet: true, width: 1920, height: 1080, want: &transform.Resolution{Width: 1920, Height: 1080}},
		{name: "width without height", widthSet: true, width: 1920, wantErr: true},
		{name: "height without width", heightSet: true, height: 1080, wantErr: true},
		{name: "zero width", widthSet: true, heightSet: true, width: 0, height: 1080, wantErr: true},
		{name: "negative height", widthSet: true, heightSet: true, width: 1920, height: -1, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := targetResolution(tc.widthSet, tc.heightSet, tc.width, tc.height)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("resolution = %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("resolution = %v, want %v", *got, *tc.want)
			}
		})
	}
}
