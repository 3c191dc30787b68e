package snippet

import (
	"reflect"
	"strings"
	"testing"
)

func TestNew_NormalisesFields(t *testing.T) {
	sn := New("deploy", "echo deploy", "  Bash ", []string{" Docker ", "docker", "", "Deploy"})

	if sn.ID == "" {
		t.Error("expected a generated ID")
	}
	if sn.Language != "bash" {
		t.Errorf("language: got %q, want %q", sn.Language, "bash")
	}
	if want := []string{"docker", "deploy"}; !reflect.DeepEqual(sn.Tags, want) {
		t.Errorf("tags: got %v, want %v", sn.Tags, want)
	}
	if sn.CreatedAt.IsZero() || sn.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		snippet Snippet
		wantErr bool
	}{
		{"valid", Snippet{Name: "ok", Content: "x"}, false},
		{"empty name", Snippet{Name: "", Content: "x"}, true},
		{"blank name", Snippet{Name: "   ", Content: "x"}, true},
		{"name too long", Snippet{Name: strings.Repeat("a", MaxNameLength+1), Content: "x"}, true},
		{"name at limit", Snippet{Name: strings.Repeat("a", MaxNameLength), Content: "x"}, false},
		{"empty content", Snippet{Name: "ok", Content: ""}, true},
		{"empty tag", Snippet{Name: "ok", Content: "x", Tags: []string{""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snippet.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasTag(t *testing.T) {
	sn := Snippet{Tags: []string{"docker", "backup"}}

	if !sn.HasTag("docker") {
		t.Error("expected HasTag(docker) to be true")
	}
	if !sn.HasTag("  BACKUP ") {
		t.Error("HasTag should be case-insensitive and trim whitespace")
	}
	if sn.HasTag("dock") {
		t.Error("HasTag must match whole tags, not substrings")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	if got := NormalizeLanguage("  GO "); got != "go" {
		t.Errorf("got %q, want %q", got, "go")
	}
	if got := NormalizeLanguage(""); got != "auto" {
		t.Errorf("empty language: got %q, want %q", got, "auto")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("Docker, backup ,docker,,  ")
	want := []string{"docker", "backup"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := ParseTags("  "); got != nil {
		t.Errorf("blank input: got %v, want nil", got)
	}
}
