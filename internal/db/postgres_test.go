package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/retailsql/internal/logging"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

type fakeTokenProvider struct {
	token     string
	expiresOn time.Time
	err       error
	calls     int
}

func (p *fakeTokenProvider) GetToken(context.Context) (string, time.Time, error) {
	p.calls++
	return p.token, p.expiresOn, p.err
}

func (p *fakeTokenProvider) String() string { return "fake" }

func TestTokenPassword_SetsPasswordPerConnection(t *testing.T) {
	provider := &fakeTokenProvider{token: "tok-1", expiresOn: time.Now().Add(time.Hour)}
	hook := tokenPassword(provider, logging.NewNullLogger())

	cc := &pgx.ConnConfig{}
	require.NoError(t, hook(context.Background(), cc))
	assert.Equal(t, "tok-1", cc.Password)

	provider.token = "tok-2"
	require.NoError(t, hook(context.Background(), cc))
	assert.Equal(t, "tok-2", cc.Password)
	assert.Equal(t, 2, provider.calls)
}

func TestTokenPassword_ProviderError(t *testing.T) {
	boom := errors.New("no credentials")
	hook := tokenPassword(&fakeTokenProvider{err: boom}, logging.NewNullLogger())

	cc := &pgx.ConnConfig{}
	err := hook(context.Background(), cc)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, cc.Password)
}

func TestNewAWSIAMTokenProvider_Validation(t *testing.T) {
	_, err := NewAWSIAMTokenProvider("", "eu-west-1", "app")
	assert.Error(t, err)
	_, err = NewAWSIAMTokenProvider("db.example.com:5432", "", "app")
	assert.Error(t, err)
	_, err = NewAWSIAMTokenProvider("db.example.com:5432", "eu-west-1", "")
	assert.Error(t, err)

	p, err := NewAWSIAMTokenProvider("db.example.com:5432", "eu-west-1", "app")
	require.NoError(t, err)
	assert.Equal(t, "AWSIAMTokenProvider(endpoint=db.example.com:5432, region=eu-west-1, user=app)", p.String())
}

func TestOpenPostgres_InvalidDSN(t *testing.T) {
	cfg := retailsql.StoreConfig{Driver: retailsql.DriverPostgres, DSN: "postgres://host:notaport/db", Table: "t"}

	_, _, err := openPostgres(context.Background(), cfg, logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, retailsql.ErrInvalidConfig))
}

func TestOpenPostgres_IsLazy(t *testing.T) {
	tests := []struct {
		name string
		cfg  retailsql.StoreConfig
	}{
		{"password", retailsql.StoreConfig{DSN: "postgres://app:pw@127.0.0.1:1/db"}},
		{"aws", retailsql.StoreConfig{DSN: "postgres://iam_user@127.0.0.1:1/db", Auth: retailsql.AuthAWS, AWSRegion: "eu-west-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Driver = retailsql.DriverPostgres
			tt.cfg.Table = "t"

			handle, release, err := openPostgres(context.Background(), tt.cfg, logging.NewNullLogger())
			require.NoError(t, err)
			assert.NoError(t, handle.Close())
			assert.NoError(t, release())
		})
	}
}
