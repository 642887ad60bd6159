package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, "alice", Identity("alice", 12345))
	assert.Equal(t, "TGID:12345", Identity("", 12345))
}

func TestRecipientService_RegisterOverwrites(t *testing.T) {
	svc := NewRecipientService(newFakeRecipientStore())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "atone1old"))
	require.NoError(t, svc.Register(ctx, "alice", "atone1new"))

	address, err := svc.AddressOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "atone1new", address)
}

func TestRecipientService_EmptyAddress(t *testing.T) {
	svc := NewRecipientService(newFakeRecipientStore())
	assert.ErrorIs(t, svc.Register(context.Background(), "alice", ""), ErrEmptyAddress)
}

func TestRecipientService_Lookups(t *testing.T) {
	svc := NewRecipientService(newFakeRecipientStore())
	ctx := context.Background()

	_, err := svc.AddressOf(ctx, "nobody")
	assert.ErrorIs(t, err, ErrRecipientNotRegistered)
	_, err = svc.UsernameByAddress(ctx, "atone1none")
	assert.ErrorIs(t, err, ErrRecipientNotRegistered)

	require.NoError(t, svc.Register(ctx, "bob", "atone1bob"))

	username, err := svc.UsernameByAddress(ctx, "atone1bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", username)

	dump, err := svc.Dump(ctx)
	require.NoError(t, err)
	require.Len(t, dump, 1)
	assert.Equal(t, "bob", dump[0].Username)
}
