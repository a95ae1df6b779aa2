package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/activation-eta/pkg/activation"
	"github.com/ethpandaops/activation-eta/pkg/beacon"
	"github.com/ethpandaops/activation-eta/pkg/network"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func beaconServer(t *testing.T, hits *int32, status string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		switch {
		case r.URL.Path == "/eth/v1/beacon/states/head/validators/105":
			fmt.Fprintf(w, `{"data":{"index":"105","balance":"32000000000","status":%q,"validator":{"pubkey":"0xaa","activation_eligibility_epoch":"10","activation_epoch":"18446744073709551615","exit_epoch":"18446744073709551615"}}}`, status)
		case r.URL.Query().Get("status") == "pending_queued":
			_, _ = w.Write([]byte(`{"data":[
				{"index":"100","status":"pending_queued","validator":{"activation_eligibility_epoch":"10"}},
				{"index":"101","status":"pending_queued","validator":{"activation_eligibility_epoch":"10"}},
				{"index":"102","status":"pending_queued","validator":{"activation_eligibility_epoch":"10"}},
				{"index":"103","status":"pending_queued","validator":{"activation_eligibility_epoch":"10"}},
				{"index":"104","status":"pending_queued","validator":{"activation_eligibility_epoch":"10"}},
				{"index":"105","status":"pending_queued","validator":{"activation_eligibility_epoch":"10"}}
			]}`))
		case r.URL.Query().Get("status") == "active_ongoing":
			_, _ = w.Write([]byte(`{"data":[{"index":"0","status":"active_ongoing","validator":{}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestValidatorActivationPending(t *testing.T) {
	var hits int32

	server := beaconServer(t, &hits, "pending_queued")
	defer server.Close()

	out, err := execute(t, "validator", "activation", "--index", "105", "--beacon", server.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Validator 105 is pending activation")
	assert.Contains(t, out, "Queue position: 5 ahead of 6 pending")
	assert.Contains(t, out, "Churn limit: 4 per epoch (1 active validators)")
	assert.Contains(t, out, "Epochs to wait: 1")
	assert.Contains(t, out, "0 days, 0 hours, 6 minutes")
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestValidatorActivationAlreadyActive(t *testing.T) {
	var hits int32

	server := beaconServer(t, &hits, "active_ongoing")
	defer server.Close()

	out, err := execute(t, "validator", "activation", "--index", "105", "--beacon", server.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "already active")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "queue must not be queried")
}

func TestValidatorActivationQueryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	out, err := execute(t, "validator", "activation", "--index", "105", "--beacon", server.URL)
	require.Error(t, err)
	assert.NotContains(t, out, "Estimated activation")
}

func TestValidatorActivationUnsupportedNetwork(t *testing.T) {
	var hits int32

	server := beaconServer(t, &hits, "pending_queued")
	defer server.Close()

	_, err := execute(t, "--config", "minimal", "validator", "activation", "--index", "105", "--beacon", server.URL)
	require.Error(t, err)

	var unsupported *network.UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "no request may be sent")
}

func TestValidatorActivationRequiresSelector(t *testing.T) {
	_, err := execute(t, "validator", "activation")
	require.Error(t, err)
}

func TestValidatorStatus(t *testing.T) {
	var hits int32

	server := beaconServer(t, &hits, "pending_queued")
	defer server.Close()

	out, err := execute(t, "validator", "status", "--index", "105", "--beacon", server.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "Index: 105")
	assert.Contains(t, out, "Status: pending_queued")
	assert.Contains(t, out, "Activation eligibility epoch: 10")
	assert.Contains(t, out, "Activation epoch: -")
}

func TestValidatorID(t *testing.T) {
	pubkey := "0x" + string(bytes.Repeat([]byte("ab"), 48))

	tests := []struct {
		name        string
		args        []string
		expected    string
		expectError bool
	}{
		{name: "index", args: []string{"--index", "42"}, expected: "42"},
		{name: "pubkey", args: []string{"--pubkey", pubkey}, expected: pubkey},
		{name: "pubkey without prefix", args: []string{"--pubkey", pubkey[2:]}, expected: pubkey},
		{name: "short pubkey", args: []string{"--pubkey", "0xabcd"}, expectError: true},
		{name: "non hex pubkey", args: []string{"--pubkey", "0x" + string(bytes.Repeat([]byte("zz"), 48))}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addValidatorFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			id, err := validatorID(cmd)
			if tt.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}

func TestLogLevelPropagates(t *testing.T) {
	defer func() {
		logLevel = "info"
		require.NoError(t, initCommon())
	}()

	_, err := execute(t, "--log-level", "debug", "version")
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.Equal(t, logrus.DebugLevel, activation.GetLogger().GetLevel())
	assert.Equal(t, logrus.DebugLevel, beacon.GetLogger().GetLevel())
	assert.Equal(t, logrus.DebugLevel, network.GetLogger().GetLevel())

	_, err = execute(t, "--log-level", "loud", "version")
	require.Error(t, err)
}
