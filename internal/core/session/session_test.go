package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestManagerStartAndCurrent(t *testing.T) {
	m := NewManager(NewMemoryStore(), "bs", time.Minute, false)

	c, w := newTestContext(httptest.NewRequest(http.MethodPost, "/account/sign-in", nil))
	sid, err := m.Start(c, "uuid-1")
	if err != nil {
		t.Fatal(err)
	}
	if sid == "" {
		t.Fatal("empty sid")
	}

	// cookie 里是 sid，不是 uuid
	cookies := w.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == "bs" {
			found = ck
		}
	}
	if found == nil {
		t.Fatal("session cookie not set")
	}
	if found.Value != sid || found.Value == "uuid-1" {
		t.Fatalf("cookie value = %q", found.Value)
	}
	if !found.HttpOnly || found.Path != "/" {
		t.Fatalf("cookie attrs: httpOnly=%v path=%q", found.HttpOnly, found.Path)
	}

	// 带着 cookie 再来一次，应能恢复出 uuid
	req := httptest.NewRequest(http.MethodGet, "/account/info", nil)
	req.AddCookie(found)
	c2, _ := newTestContext(req)
	got, err := m.Current(c2)
	if err != nil || got != "uuid-1" {
		t.Fatalf("Current = %q, %v", got, err)
	}
}

func TestManagerDestroy(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, "bs", time.Minute, false)

	c, w := newTestContext(httptest.NewRequest(http.MethodPost, "/account/sign-in", nil))
	sid, _ := m.Start(c, "uuid-2")

	req := httptest.NewRequest(http.MethodPost, "/account/sign-out", nil)
	for _, ck := range w.Result().Cookies() {
		req.AddCookie(ck)
	}
	c2, _ := newTestContext(req)
	m.Destroy(c2)

	if _, err := store.Get(c2.Request.Context(), sid); err == nil {
		t.Fatal("session survived destroy")
	}
}

func TestManagerNoCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), "bs", time.Minute, false)
	c, _ := newTestContext(httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := m.Current(c); err == nil {
		t.Fatal("expected error without cookie")
	}
}
