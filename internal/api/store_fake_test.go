package api

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"license-gateway/internal/auth"
	"license-gateway/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testAdminKey  = "test-admin-key"
	testClientKey = "test-client-key"
)

// fakeStore is an in-memory Store with the same observable contract as the
// repository: nil results for missing rows, ErrDeviceLimitReached from
// AttachDevice, cascade delete from accounts to devices.
type fakeStore struct {
	mu            sync.Mutex
	nextAccountID int
	nextDeviceID  int
	nextLicenseID int
	accounts      map[int]*database.Account
	devices       map[int]*database.Device
	licenses      map[int]*database.License
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[int]*database.Account),
		devices:  make(map[int]*database.Device),
		licenses: make(map[int]*database.License),
	}
}

func (f *fakeStore) CreateAccount(_ context.Context, account *database.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextAccountID++
	account.ID = f.nextAccountID
	if account.CreatedDate.IsZero() {
		account.CreatedDate = time.Now().UTC()
	}
	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeStore) GetAccountByCredentials(_ context.Context, username, password string) (*database.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, a := range f.accounts {
		if a.Username == username && a.Password == password {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetAccountByID(_ context.Context, id int) (*database.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if a, ok := f.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) ListAccountSummaries(_ context.Context) ([]database.AccountSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var summaries []database.AccountSummary
	for _, a := range f.accounts {
		count := 0
		for _, d := range f.devices {
			if d.AccountID == a.ID {
				count++
			}
		}
		summaries = append(summaries, database.AccountSummary{
			ID:             a.ID,
			Username:       a.Username,
			ExpirationDate: a.ExpirationDate,
			DeviceCount:    count,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (f *fakeStore) DeleteAccount(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.accounts, id)
	for deviceID, d := range f.devices {
		if d.AccountID == id {
			delete(f.devices, deviceID)
		}
	}
	return nil
}

func (f *fakeStore) ListDevices(_ context.Context, accountID int) ([]database.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var devices []database.Device
	for _, d := range f.devices {
		if d.AccountID == accountID {
			devices = append(devices, *d)
		}
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].ID < devices[j].ID })
	return devices, nil
}

func (f *fakeStore) AttachDevice(_ context.Context, accountID int, ip string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[accountID]
	if !ok {
		return database.ErrDeviceLimitReached
	}

	count := 0
	for _, d := range f.devices {
		if d.AccountID == accountID {
			if d.IPAddress == ip {
				return nil
			}
			count++
		}
	}

	if count >= account.MaxUsers {
		return database.ErrDeviceLimitReached
	}

	f.nextDeviceID++
	f.devices[f.nextDeviceID] = &database.Device{
		ID:        f.nextDeviceID,
		IPAddress: ip,
		LastLogin: now,
		AccountID: accountID,
	}
	return nil
}

func (f *fakeStore) CreateLicense(_ context.Context, license *database.License) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextLicenseID++
	license.ID = f.nextLicenseID
	stored := *license
	f.licenses[license.ID] = &stored
	return nil
}

func (f *fakeStore) GetLicenseByKey(_ context.Context, key string) (*database.License, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.licenses {
		if l.LicenseKey == key {
			copied := *l
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeleteLicense(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.licenses, id)
	return nil
}

func testKeys() auth.Keys {
	return auth.Keys{Admin: testAdminKey, Client: testClientKey}
}

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestServer(store Store) *Server {
	return NewServer(
		ServerConfig{Host: "127.0.0.1", Port: 0},
		store,
		nil,
		nil,
		testKeys(),
		noopLogger(),
	)
}

// doRequest performs a request against the server with the given remote
// address, returning the recorded response.
func doRequest(s *Server, method, target, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}
