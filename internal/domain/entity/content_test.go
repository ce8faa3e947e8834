package entity

import "testing"

func TestContent_RecomputeTotalDubbings(t *testing.T) {
	c := &Content{
		Dubbing: map[string]bool{
			"hindi":   true,
			"tamil":   false,
			"english": true,
			"french":  true,
		},
		TotalDubbings: 99, // stale
	}
	c.RecomputeTotalDubbings()
	if c.TotalDubbings != 3 {
		t.Errorf("TotalDubbings = %d, want 3", c.TotalDubbings)
	}
}

func TestContent_RecomputeTotalDubbings_Empty(t *testing.T) {
	c := &Content{}
	c.RecomputeTotalDubbings()
	if c.TotalDubbings != 0 {
		t.Errorf("TotalDubbings = %d, want 0", c.TotalDubbings)
	}
}

func TestContent_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    []string
	}{
		{
			name:    "all missing",
			content: Content{},
			want:    []string{"platform", "title", "primaryLanguage", "year"},
		},
		{
			name:    "valid",
			content: Content{Platform: "HotStream", Title: "The Chase", PrimaryLanguage: "hindi", Year: 2021},
			want:    nil,
		},
		{
			name:    "year too early",
			content: Content{Platform: "HotStream", Title: "Archive", PrimaryLanguage: "english", Year: 1899},
			want:    []string{"year"},
		},
		{
			name:    "year too late",
			content: Content{Platform: "HotStream", Title: "Future", PrimaryLanguage: "english", Year: 2031},
			want:    []string{"year"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.content.MissingRequiredFields()
			if len(got) != len(tt.want) {
				t.Fatalf("MissingRequiredFields() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUserRole_IsValid(t *testing.T) {
	if !RoleUser.IsValid() || !RoleAdmin.IsValid() {
		t.Error("known roles should be valid")
	}
	if UserRole("superuser").IsValid() {
		t.Error("unknown role should be invalid")
	}
}

func TestActivityAction_IsValid(t *testing.T) {
	for _, a := range []ActivityAction{
		ActionLogin, ActionLogout, ActionCreate, ActionUpdate, ActionDelete,
		ActionImport, ActionExport, ActionRoleChange, ActionStatusChange, ActionRegister,
	} {
		if !a.IsValid() {
			t.Errorf("action %q should be valid", a)
		}
	}
	if ActivityAction("browse").IsValid() {
		t.Error("unknown action should be invalid")
	}
}
