package workspace

import (
	"os"
	"strings"
	"testing"
)

func TestRecover_AbandonedSession(t *testing.T) {
	env := setupEnv(t, `{"dependencies":{"b":"3"}}`)
	if _, err := Open(env.Layout, env.Component, nil); err != nil {
		t.Fatal(err)
	}
	// The session is never released, as if the process had been killed.

	st, err := Inspect(env.Layout)
	if err != nil {
		t.Fatal(err)
	}
	if st.Clean() || !st.LinkIsSymlink || st.Journal == nil {
		t.Fatalf("Inspect = %+v, want link and journal", st)
	}
	if st.Journal.Component != env.Component {
		t.Errorf("journal component = %q", st.Journal.Component)
	}

	rec, err := Recover(env.Layout, false, nil)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if rec.RemovedLink != env.Layout.EntryPath || rec.RestoredManifest != env.Layout.ManifestPath || !rec.RemovedJournal {
		t.Errorf("Recovery = %+v", rec)
	}
	assertPristine(t, env)

	// A second session can start now.
	s, err := Open(env.Layout, env.Component, nil)
	if err != nil {
		t.Fatalf("Open after Recover: %v", err)
	}
	s.Release()
}

func TestRecover_LinkOnly(t *testing.T) {
	env := setupEnv(t, "")
	if err := os.Symlink(env.Component, env.Layout.EntryPath); err != nil {
		t.Fatal(err)
	}

	rec, err := Recover(env.Layout, false, nil)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if rec.RemovedLink == "" || rec.RestoredManifest != "" {
		t.Errorf("Recovery = %+v", rec)
	}
	assertPristine(t, env)
}

func TestRecover_RefusesRegularFile(t *testing.T) {
	env := setupEnv(t, "")
	writeFile(t, env.Layout.EntryPath, "<p>placeholder</p>")

	_, err := Recover(env.Layout, false, nil)
	if err == nil || !strings.Contains(err.Error(), "regular file") {
		t.Fatalf("error = %v, want regular file refusal", err)
	}
	if got := readFile(t, env.Layout.EntryPath); got != "<p>placeholder</p>" {
		t.Error("regular file modified")
	}
}

func TestRecover_NothingToDo(t *testing.T) {
	env := setupEnv(t, "")

	rec, err := Recover(env.Layout, false, nil)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !rec.Nothing() {
		t.Errorf("Recovery = %+v, want nothing", rec)
	}
}

func TestRecover_CorruptJournal(t *testing.T) {
	env := setupEnv(t, "")
	writeFile(t, env.Layout.JournalPath, "{not json")

	if _, err := Recover(env.Layout, false, nil); err == nil {
		t.Fatal("expected error for corrupt journal")
	}
}

func TestJournal_Alive(t *testing.T) {
	if (&Journal{PID: os.Getpid()}).Alive() {
		t.Error("own pid reported as a live foreign session")
	}
	if (&Journal{PID: 0}).Alive() {
		t.Error("pid 0 reported alive")
	}
}
