package account_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/security"
)

// in-memory store keyed by email, good enough to exercise the whole flow
type fakeStore struct {
	byEmail map[string]user.User
	nextID  int64

	createErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: make(map[string]user.User)}
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (f *fakeStore) Create(_ context.Context, u user.User) (user.User, error) {
	if f.createErr != nil {
		return user.User{}, f.createErr
	}

	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeStore) Update(_ context.Context, u user.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	stored, ok := f.byEmail[u.Email]

	if !ok {
		return user.ErrNotFound
	}

	u.ID = stored.ID
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.byEmail))

	for _, u := range f.byEmail {
		out = append(out, u)
	}

	return out, nil
}

type fakeIssuer struct{}

func (fakeIssuer) GenerateToken(userID int64, email, _ string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, email), nil
}

func newService(store *fakeStore) *account.Service {
	return account.NewService(store, fakeIssuer{})
}

func register(t *testing.T, svc *account.Service, email, secret string) {
	t.Helper()

	err := svc.Register(context.Background(), account.RegisterInput{
		Email:    email,
		Secret:   security.Secret(secret),
		Name:     "A",
		LastName: "B",
		Username: "ab",
	})

	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	register(t, svc, "a@x.com", "secret1")

	token, err := svc.Authenticate(context.Background(), "a@x.com", "secret1")

	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	stored := store.byEmail["a@x.com"]

	if stored.PasswordHash == "" {
		t.Fatal("stored record must carry a hash")
	}

	if stored.PasswordHash == security.Hash("secret1") {
		t.Fatal("plaintext secret was persisted")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(newFakeStore())

	tests := []struct {
		name  string
		input account.RegisterInput
	}{
		{name: "missing_email", input: account.RegisterInput{Secret: "secret1"}},
		{name: "missing_secret", input: account.RegisterInput{Email: "a@x.com"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(context.Background(), tt.input)

			if !errors.Is(err, account.ErrInvalidInput) {
				t.Fatalf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newService(newFakeStore())

	register(t, svc, "a@x.com", "secret1")

	err := svc.Register(context.Background(), account.RegisterInput{
		Email:  "a@x.com",
		Secret: "another",
	})

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	register(t, svc, "a@x.com", "secret1")

	tests := []struct {
		name    string
		email   string
		secret  string
		wantErr error
	}{
		{name: "empty_email", email: "", secret: "secret1", wantErr: account.ErrInvalidInput},
		{name: "empty_secret", email: "a@x.com", secret: "", wantErr: account.ErrInvalidInput},
		// unknown email is reported as not-found, never as bad credentials
		{name: "unknown_email", email: "b@x.com", secret: "secret1", wantErr: user.ErrNotFound},
		{name: "wrong_password", email: "a@x.com", secret: "secret2", wantErr: account.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, security.Secret(tt.secret))

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfileProjection(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	register(t, svc, "a@x.com", "secret1")

	profile, err := svc.Profile(context.Background(), "a@x.com")

	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	want := user.Profile{
		Name:     "A",
		LastName: "B",
		Email:    "a@x.com",
		Username: "ab",
	}

	if profile != want {
		t.Fatalf("got %+v, want %+v", profile, want)
	}
}

func TestProfileErrors(t *testing.T) {
	svc := newService(newFakeStore())

	if _, err := svc.Profile(context.Background(), ""); !errors.Is(err, account.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	if _, err := svc.Profile(context.Background(), "nobody@x.com"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	register(t, svc, "a@x.com", "secret1")

	city := "Berlin"

	err := svc.UpdateProfile(context.Background(), "a@x.com", user.ProfilePatch{City: &city})

	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	u := store.byEmail["a@x.com"]

	if u.City != "Berlin" {
		t.Fatalf("got city %q, want Berlin", u.City)
	}

	// everything absent from the patch keeps its stored value
	if u.Name != "A" || u.LastName != "B" || u.Email != "a@x.com" || u.Username != "ab" {
		t.Fatalf("patch touched fields it should not have: %+v", u)
	}

	if u.PasswordHash == "" {
		t.Fatal("patch dropped the password hash")
	}
}

func TestUpdateProfileErrors(t *testing.T) {
	svc := newService(newFakeStore())

	if err := svc.UpdateProfile(context.Background(), "", user.ProfilePatch{}); !errors.Is(err, account.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	if err := svc.UpdateProfile(context.Background(), "nobody@x.com", user.ProfilePatch{}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListAll(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	register(t, svc, "a@x.com", "secret1")

	users, err := svc.ListAll(context.Background())

	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}

	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
}
