package ports

import (
	"context"
	"errors"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for a missing key
var ErrKeyNotFound = errors.New("key not found")

// Persisted keys
const (
	KeyURLDatabase   = "urlDatabase"
	KeyLinksHistory  = "linksHistory"
	KeyDashboardData = "dashboardData"
)

// KeyValueStore is the durable string-keyed storage the core persists to
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Navigator performs the terminal navigation of a successful redirect
type Navigator interface {
	Navigate(ctx context.Context, destination string) error
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(ctx context.Context, destination string) error

func (f NavigatorFunc) Navigate(ctx context.Context, destination string) error {
	return f(ctx, destination)
}

// AuthProvider signs users in interactively and out again
type AuthProvider interface {
	// AuthCodeURL returns where the user is sent to sign in
	AuthCodeURL(state string) string
	// Exchange completes the sign-in and returns the user identity
	Exchange(ctx context.Context, code string) (*domain.Identity, error)
}

// ProfileStore keeps user profiles written on sign-in
type ProfileStore interface {
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, email string) (*domain.Profile, error)
}

// QRCodeService renders a QR image for a piece of data
type QRCodeService interface {
	ImageURL(data string, size int) string
	Fetch(ctx context.Context, data string, size int) (image []byte, contentType string, err error)
}

// LinkService defines the business logic operations
type LinkService interface {
	Shorten(ctx context.Context, rawURL string) (*domain.LinkRecord, error)
	GetLink(ctx context.Context, code string) (*domain.LinkRecord, error)
	DeleteLink(ctx context.Context, code string) error
	History(ctx context.Context) []domain.LinkRecord
	Dashboard(ctx context.Context) domain.DashboardData
	Resolve(ctx context.Context, target domain.Target, nav Navigator) domain.Resolution

	// Migration
	Export(ctx context.Context) (*domain.Snapshot, error)
	Import(ctx context.Context, snapshot *domain.Snapshot) (int, error)

	// QR image of the original destination of a code
	QRCode(ctx context.Context, code string, size int) ([]byte, string, error)
}
