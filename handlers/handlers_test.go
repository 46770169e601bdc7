package handlers_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Ekhol/warbler/handlers"
	"github.com/Ekhol/warbler/models"
	"github.com/Ekhol/warbler/repositories"
	"github.com/Ekhol/warbler/routes"

	"github.com/gorilla/securecookie"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Use the same secret key as the CookieStore so tests can mint session
// cookies directly, the way a browser would present them after login.
var secretKey = []byte("development-key")
var codec = securecookie.New(secretKey, nil)

type testApp struct {
	server   *httptest.Server
	users    repositories.UserRepository
	messages repositories.MessageRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	store := handlers.NewSessionStore(string(secretKey))

	router := routes.SetupRoutes(
		handlers.NewAuthHandler(userRepo, store),
		handlers.NewUserHandler(userRepo, messageRepo, store),
		handlers.NewMessageHandler(messageRepo, userRepo, store),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, users: userRepo, messages: messageRepo}
}

func (app *testApp) signup(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	user, err := app.users.Signup(username, email, password, "")
	if err != nil {
		t.Fatalf("signup %s: %v", username, err)
	}
	return user
}

// sessionCookie encodes a session cookie for userID without going through
// /login, mimicking a browser that already holds an authenticated session.
func sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	values := map[interface{}]interface{}{handlers.CurrUserKey: userID}
	encoded, err := codec.Encode(handlers.SessionName, values)
	if err != nil {
		t.Fatalf("encoding session cookie: %v", err)
	}
	return &http.Cookie{Name: handlers.SessionName, Value: encoded, Path: "/"}
}

// browser keeps cookies and follows redirects, like a real client.
func (app *testApp) browser(t *testing.T, cookies ...*http.Cookie) *http.Client {
	t.Helper()
	client := app.rawClient(t, cookies...)
	client.CheckRedirect = nil
	return client
}

// rawClient keeps cookies but stops at the first response, so redirects
// can be asserted directly.
func (app *testApp) rawClient(t *testing.T, cookies ...*http.Cookie) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	if len(cookies) > 0 {
		serverURL, err := url.Parse(app.server.URL)
		if err != nil {
			t.Fatalf("parsing server URL: %v", err)
		}
		jar.SetCookies(serverURL, cookies)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp, readBody(t, resp)
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("expected body to contain %q. Body: %s", want, body)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("expected body not to contain %q. Body: %s", unwanted, body)
	}
}
