package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/session"
)

func TestLogin_SavesSession(t *testing.T) {
	fb := newFakeBackend(t)
	home := setupCLI(t, fb.URL, false)

	out, err := runCLI(t, "hunter2\n", "login", "-u", "admin@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin@example.com")

	st, err := session.NewStore(home).Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-0123456789abcdef", st.Token)
	assert.Equal(t, "admin@example.com", st.Username)
	assert.Equal(t, fb.URL, st.BaseURL)
}

func TestLogin_PromptsForEmail(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, false)

	out, err := runCLI(t, "admin@example.com\nhunter2\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "E-mail: ")
	assert.Contains(t, out, "Logged in as admin@example.com")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  error
	}{
		{name: "bad e-mail", stdin: "hunter2\n", args: []string{"-u", "admin"}, want: session.ErrInvalidEmail},
		{name: "empty password", stdin: "\n", args: []string{"-u", "admin@example.com"}, want: session.ErrPasswordRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t)
			home := setupCLI(t, fb.URL, false)

			_, err := runCLI(t, tt.stdin, append([]string{"login"}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, fb.Requests(), "invalid credentials must not reach the backend")

			_, statErr := os.Stat(filepath.Join(home, session.FileName))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestLogin_RejectedByBackend(t *testing.T) {
	fb := newFakeBackend(t)
	home := setupCLI(t, fb.URL, false)

	_, err := runCLI(t, "wrong\n", "login", "-u", "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")

	st, err := session.NewStore(home).Load()
	require.NoError(t, err)
	assert.True(t, st.Empty())
}

func TestWhoami(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, true)

	out, err := runCLI(t, "", "whoami", "-o", "json")
	require.NoError(t, err)

	var view struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "admin@example.com", view.Username)
	assert.Equal(t, session.MaskToken("tok-0123456789abcdef"), view.Token)
	assert.NotContains(t, out, "tok-0123456789abcdef")
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, false)

	_, err := runCLI(t, "", "whoami")
	require.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestLogout(t *testing.T) {
	fb := newFakeBackend(t)
	home := setupCLI(t, fb.URL, true)

	out, err := runCLI(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out admin@example.com")

	_, statErr := os.Stat(filepath.Join(home, session.FileName))
	assert.True(t, os.IsNotExist(statErr))

	out, err = runCLI(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestDataCommandsRequireLogin(t *testing.T) {
	fb := newFakeBackend(t)
	setupCLI(t, fb.URL, false)

	for _, args := range [][]string{
		{"cars", "list"},
		{"manufacturers", "list"},
		{"leads", "list", "finance"},
		{"blogs", "delete", "b1", "--yes"},
	} {
		_, err := runCLI(t, "", args...)
		require.ErrorIs(t, err, session.ErrNotLoggedIn, "%v", args)
	}
	assert.Empty(t, fb.Requests())
}
