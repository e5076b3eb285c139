package middleware

import (
	"testing"

	"palabra/internal/testutil"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestOwnerOnly(t *testing.T) {
	tests := []struct {
		name          string
		owners        []int64
		ctx           *testutil.FakeContext
		expectedCall  bool
		expectedSent  int
		expectedAlert int
	}{
		{
			name:         "owner passes",
			owners:       []int64{1, 2},
			ctx:          testutil.NewFakeContext(2, "hola"),
			expectedCall: true,
		},
		{
			name:         "no owners configured",
			owners:       nil,
			ctx:          testutil.NewFakeContext(99, "hola"),
			expectedCall: true,
		},
		{
			name:         "stranger message",
			owners:       []int64{1},
			ctx:          testutil.NewFakeContext(99, "hola"),
			expectedSent: 1,
		},
		{
			name:          "stranger callback",
			owners:        []int64{1},
			ctx:           testutil.NewFakeCallback(99, "know", ""),
			expectedAlert: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(c tele.Context) error {
				called = true
				return nil
			}

			err := OwnerOnly(tt.owners, testutil.NewTestLogger())(next)(tt.ctx)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCall, called)
			assert.Len(t, tt.ctx.Sent, tt.expectedSent)
			assert.Len(t, tt.ctx.Answered, tt.expectedAlert)
		})
	}
}
