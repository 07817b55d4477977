package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/export"
	"github.com/rshade/dealerdesk/internal/session"
)

// NewLoginCmd creates the login command. The password is read without echo
// from a terminal, or as one line from stdin otherwise.
func NewLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend",
		Example: `  # Prompt for the password
  dealerdesk login --username admin@example.com

  # Scripted login
  echo "$PASSWORD" | dealerdesk login -u admin@example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, username)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account e-mail (prompted when empty)")
	return cmd
}

func runLogin(cmd *cobra.Command, username string) error {
	deps, err := newAppDeps(cmd)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	if username == "" {
		cmd.Print("E-mail: ")
		if username, err = readLine(in); err != nil {
			return fmt.Errorf("reading e-mail: %w", err)
		}
	}
	password, err := readPassword(cmd, in)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := deps.session.Login(cmd.Context(), deps.client, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	printMessage(cmd, "Logged in as "+deps.session.State().Username)
	return nil
}

// readPassword reads without echo when stdin is the process terminal.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f) {
		cmd.Print("Password: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		return string(pw), err
	}
	return readLine(in)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newAppDeps(cmd)
			if err != nil {
				return err
			}
			user := deps.session.State().Username
			if err := deps.session.Logout(); err != nil {
				return fmt.Errorf("removing session: %w", err)
			}
			if user == "" {
				cmd.Println("Not logged in")
				return nil
			}
			printMessage(cmd, "Logged out "+user)
			return nil
		},
	}
}

// whoamiView is the JSON shape of whoami.
type whoamiView struct {
	Username   string     `json:"username"`
	BaseURL    string     `json:"base_url,omitempty"`
	Token      string     `json:"token"`
	LoggedInAt *time.Time `json:"logged_in_at,omitempty"`
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newAppDeps(cmd)
			if err != nil {
				return err
			}
			st := deps.session.State()
			if st.Empty() {
				return session.ErrNotLoggedIn
			}

			view := whoamiView{Username: st.Username, BaseURL: st.BaseURL, Token: session.MaskToken(st.Token)}
			if !st.LoggedInAt.IsZero() {
				view.LoggedInAt = &st.LoggedInAt
			}
			if outputFormat(cmd) == config.FormatJSON {
				return export.WriteJSON(cmd.OutOrStdout(), view, true)
			}

			cmd.Printf("User:     %s\n", view.Username)
			if view.BaseURL != "" {
				cmd.Printf("Backend:  %s\n", view.BaseURL)
			}
			cmd.Printf("Token:    %s\n", view.Token)
			if view.LoggedInAt != nil {
				cmd.Printf("Since:    %s\n", view.LoggedInAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}
