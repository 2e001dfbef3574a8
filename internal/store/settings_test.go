package store

import (
	"errors"
	"testing"
)

func TestSettings_GetSet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want %v", err, ErrNotFound)
	}

	if err := settings.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := settings.Set("theme", "light"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, err := settings.Get("theme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "light" {
		t.Errorf("Get() = %q, want %q", got, "light")
	}
}

func TestSettings_GetInt(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		def     int
		want    int
		wantErr bool
	}{
		{name: "unset uses default", def: 3, want: 3},
		{name: "stored value", stored: "1", def: 0, want: 1},
		{name: "garbage", stored: "one", def: 2, want: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := newTestStore(t).Settings()
			if tt.stored != "" {
				if err := settings.Set(KeyCamera, tt.stored); err != nil {
					t.Fatalf("Set() error = %v", err)
				}
			}

			got, err := settings.GetInt(KeyCamera, tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetInt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
