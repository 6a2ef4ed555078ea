package resources

import (
	"slices"
	"testing"

	"vbagx/locale"

	"github.com/BurntSushi/toml"
)

func TestLocaleFilesShareMessageIDs(t *testing.T) {
	files, err := GetLocaleMessageFiles()
	if err != nil {
		t.Fatal(err)
	}

	var english map[string]string
	for _, f := range files {
		var messages map[string]string
		if err := toml.Unmarshal(f.Content, &messages); err != nil {
			t.Fatalf("%s: %v", f.Name, err)
		}
		if english == nil {
			english = messages
			continue
		}
		for id := range english {
			if _, ok := messages[id]; !ok {
				t.Errorf("%s is missing %q", f.Name, id)
			}
		}
		for id := range messages {
			if _, ok := english[id]; !ok {
				t.Errorf("%s has %q, which English lacks", f.Name, id)
			}
		}
	}
}

func TestLanguages(t *testing.T) {
	if got := Languages(); !slices.Equal(got, []string{"en", "es", "fr"}) {
		t.Errorf("Languages() = %v", got)
	}
	files, err := GetLocaleMessageFiles()
	if err != nil {
		t.Fatal(err)
	}
	if files[0].Name != "active.en.toml" {
		t.Errorf("first catalog is %s", files[0].Name)
	}
}

func TestLocalizeFallsBack(t *testing.T) {
	files, err := GetLocaleMessageFiles()
	if err != nil {
		t.Fatal(err)
	}
	if err := locale.InitFromBytes(files); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { locale.SetWithCode("en") })

	tests := []struct {
		lang  string
		id    string
		other string
		want  string
	}{
		{"en", "cancel", "Cancel", "Cancel"},
		{"es", "cancel", "Cancel", "Cancelar"},
		{"fr", "close", "Close", "Fermer"},
		{"fr", "not_translated", "Fallback", "Fallback"},
		{"de", "close", "Close", "Close"},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.id, func(t *testing.T) {
			if err := locale.SetWithCode(tt.lang); err != nil {
				t.Fatal(err)
			}
			if got := locale.Current(); got != tt.lang {
				t.Errorf("Current() = %q, want %q", got, tt.lang)
			}
			if got := locale.Get(tt.id, tt.other); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestInvalidLanguageKeepsCurrent(t *testing.T) {
	files, err := GetLocaleMessageFiles()
	if err != nil {
		t.Fatal(err)
	}
	if err := locale.InitFromBytes(files); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { locale.SetWithCode("en") })

	if err := locale.SetWithCode("es"); err != nil {
		t.Fatal(err)
	}
	if err := locale.SetWithCode("not a language!"); err == nil {
		t.Fatal("expected an error for a malformed code")
	}
	if got := locale.Current(); got != "es" {
		t.Errorf("Current() = %q after a failed switch, want es", got)
	}
}
