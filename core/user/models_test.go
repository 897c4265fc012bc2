package user

import "testing"

func TestUser_SetCheckPassword(t *testing.T) {
	var usr User
	if err := usr.SetPassword("L3tsL34rn!"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if len(usr.PasswordHash) == 0 {
		t.Fatal("SetPassword() did not set a hash")
	}
	if err := usr.CheckPassword("L3tsL34rn!"); err != nil {
		t.Errorf("CheckPassword() error = %v; want nil", err)
	}
	if err := usr.CheckPassword("nope"); err == nil {
		t.Error("CheckPassword() with wrong password returned nil")
	}
}

func TestUser_roles(t *testing.T) {
	anon := User{}
	if !anon.IsAnonymous() {
		t.Error("IsAnonymous() = false for a zero User")
	}

	student := User{ID: "usr1", Role: RoleStudent}
	if student.IsAnonymous() || !student.IsStudent() || student.IsTeacher() {
		t.Errorf("student role checks failed: %+v", student)
	}

	teacher := User{ID: "usr2", Role: RoleTeacher}
	if !teacher.IsTeacher() || teacher.IsStudent() {
		t.Errorf("teacher role checks failed: %+v", teacher)
	}
}
