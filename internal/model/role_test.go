package model

import "testing"

func TestRoleRoom(t *testing.T) {
	if got := RoleAdmin.Room(); got != "admin-room" {
		t.Fatalf("RoleAdmin.Room() = %q", got)
	}
	if got := RoleStudent.Room(); got != "student-room" {
		t.Fatalf("RoleStudent.Room() = %q", got)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleStudent, RoleFaculty, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("superuser").Valid() {
		t.Fatal("unknown role should be invalid")
	}
}

func TestNoticeAudienceRooms(t *testing.T) {
	tests := []struct {
		audience NoticeAudience
		want     []string
	}{
		{NoticeAudienceStudent, []string{"student-room"}},
		{NoticeAudienceFaculty, []string{"faculty-room"}},
		{NoticeAudienceAll, []string{"student-room", "faculty-room"}},
	}
	for _, tt := range tests {
		got := tt.audience.Rooms()
		if len(got) != len(tt.want) {
			t.Fatalf("%s.Rooms() = %v, want %v", tt.audience, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s.Rooms() = %v, want %v", tt.audience, got, tt.want)
			}
		}
	}
}

func TestNoticeAudienceRoles(t *testing.T) {
	if roles := NoticeAudienceAll.Roles(); len(roles) != 2 {
		t.Fatalf("all audience roles = %v", roles)
	}
	if roles := NoticeAudienceFaculty.Roles(); len(roles) != 1 || roles[0] != RoleFaculty {
		t.Fatalf("faculty audience roles = %v", roles)
	}
}
