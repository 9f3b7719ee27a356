package registry

import "testing"

func TestInMemStore_GetAbsent(t *testing.T) {
	s := NewInMemStore()
	if _, ok := s.Get("1234"); ok {
		t.Error("expected absent client_id")
	}
}

func TestInMemStore_CreateAndGet(t *testing.T) {
	s := NewInMemStore(Application{ClientID: "1234", ClientSecret: "qwerty"})
	app, ok := s.Get("1234")
	if !ok {
		t.Fatal("expected application to be found")
	}
	if app.ClientSecret != "qwerty" {
		t.Errorf("expected secret qwerty, got %q", app.ClientSecret)
	}
}

func TestInMemStore_CreateIfNotExists_Idempotent(t *testing.T) {
	s := NewInMemStore()
	first := s.CreateIfNotExists(Application{ClientID: "1234", ClientSecret: "qwerty"})
	second := s.CreateIfNotExists(Application{ClientID: "1234", ClientSecret: "other"})
	if second != first {
		t.Errorf("re-registration must return the existing record, got %+v", second)
	}
	app, _ := s.Get("1234")
	if app.ClientSecret != "qwerty" {
		t.Errorf("existing record must not be overwritten, got %q", app.ClientSecret)
	}
}
