package cli

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	"github.com/themizzi/shopcheck/internal/testdata"
)

// fakeResponse implements the parts of playwright.APIResponse the client uses
type fakeResponse struct {
	playwright.APIResponse
	body string
}

func (r *fakeResponse) Status() int { return 200 }

func (r *fakeResponse) Body() ([]byte, error) { return []byte(r.body), nil }

func (r *fakeResponse) Dispose() error { return nil }

// fakeChannel answers every request with the same body and records URLs
type fakeChannel struct {
	urls []string
}

func (c *fakeChannel) Fetch(urlOrRequest interface{}, _ ...playwright.APIRequestContextFetchOptions) (playwright.APIResponse, error) {
	u, _ := urlOrRequest.(string)
	c.urls = append(c.urls, u)
	return &fakeResponse{body: `{"responseCode": 200, "message": "ok"}`}, nil
}

func TestProbeCalls_CoversEveryEndpoint(t *testing.T) {
	// GIVEN
	channel := &fakeChannel{}
	client := api.NewClient(channel, "http://store.test/api", zap.NewNop())
	calls := ProbeCalls(client, testdata.NewGenerator(rand.NewPCG(1, 2)))

	// WHEN
	var out bytes.Buffer
	if err := RunProbe(&out, calls, nil); err != nil {
		t.Fatalf("RunProbe() error = %v", err)
	}

	// THEN
	for _, endpoint := range []string{
		"/productsList", "/searchProduct", "/brandsList", "/createAccount",
		"/verifyLogin", "/updateAccount", "/getUserDetailByEmail", "/deleteAccount",
	} {
		found := false
		for _, u := range channel.urls {
			if strings.Contains(u, endpoint) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a call to %s", endpoint)
		}
	}
	if len(channel.urls) != len(calls) {
		t.Errorf("Expected %d requests, got %d", len(calls), len(channel.urls))
	}
	if !strings.Contains(out.String(), "GET productsList") || !strings.Contains(out.String(), "ok") {
		t.Errorf("Unexpected probe table:\n%s", out.String())
	}
}

func TestRunProbe_ReportsFirstFailure(t *testing.T) {
	// GIVEN
	boom := errors.New("connection refused")
	calls := []ProbeCall{
		{"first", func() (api.Envelope, error) { return api.Envelope{}, boom }},
		{"second", func() (api.Envelope, error) { return api.Envelope{Status: 200}, nil }},
	}

	// WHEN
	var out bytes.Buffer
	err := RunProbe(&out, calls, zap.NewNop())

	// THEN
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped failure, got %v", err)
	}
	if !strings.Contains(out.String(), "second") {
		t.Error("Expected the probe to continue after a failure")
	}
}
