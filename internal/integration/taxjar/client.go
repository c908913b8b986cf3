package taxjar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/httpclient"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/metrics"
	"github.com/flexprice/salestax/internal/types"
)

// FailureStage tells where a calculation failed
type FailureStage string

const (
	StageContext   FailureStage = "context"
	StageRequest   FailureStage = "request"
	StageTransport FailureStage = "transport"
	StageStatus    FailureStage = "status"
	StageDecode    FailureStage = "decode"
	StagePanic     FailureStage = "panic"
)

// Failure describes why a TaxJar calculation produced no tax
type Failure struct {
	Stage      FailureStage
	StatusCode int
	Detail     string
	Err        error
}

func (f *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "taxjar %s failure", f.Stage)
	if f.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", f.StatusCode)
	}
	if f.Detail != "" {
		fmt.Fprintf(&b, ": %s", f.Detail)
	}
	if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	}
	return b.String()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one TaxJar call: Tax on success, Failure otherwise
type Result struct {
	Tax     *Tax
	Failure *Failure
}

// OK reports whether the call produced a tax
func (r Result) OK() bool {
	return r.Failure == nil && r.Tax != nil
}

func failed(stage FailureStage, err error) Result {
	return Result{Failure: &Failure{Stage: stage, Err: err}}
}

// Client talks to the TaxJar API
type Client interface {
	TaxForOrder(ctx context.Context, creds Credentials, req *TaxRequest) Result
}

type client struct {
	httpClient httpclient.Client
	logger     *logger.Logger
}

// NewClient creates a TaxJar client on top of an HTTP client
func NewClient(httpClient httpclient.Client, logger *logger.Logger) Client {
	return &client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// TaxForOrder calls POST /v2/taxes. It makes exactly one attempt and never
// returns a nil Tax together with a nil Failure.
func (c *client) TaxForOrder(ctx context.Context, creds Credentials, req *TaxRequest) Result {
	body, err := json.Marshal(req)
	if err != nil {
		return failed(StageRequest, ierr.WithError(err).
			WithHint("Invalid TaxJar request data").
			Mark(ierr.ErrInternal))
	}

	url := strings.TrimRight(creds.BaseURL, "/") + TaxesEndpoint
	httpReq := &httpclient.Request{
		Method: http.MethodPost,
		URL:    url,
		Headers: map[string]string{
			"Authorization": "Bearer " + creds.Token,
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"x-api-version": APIVersion,
		},
		Body: body,
	}

	log := c.logger.WithContext(ctx)
	log.Debugw("calling TaxJar",
		"url", url,
		"sandbox", creds.Sandbox,
		"to_zip", req.ToZip,
		"line_items", len(req.LineItems))

	started := time.Now()
	resp, err := c.httpClient.Send(ctx, httpReq)
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			metrics.ObserveExternalCall(string(types.SalesTaxProviderTaxJar), strconv.Itoa(httpErr.StatusCode), started)
			return Result{Failure: &Failure{
				Stage:      StageStatus,
				StatusCode: httpErr.StatusCode,
				Detail:     errorDetail(httpErr.Response),
				Err:        err,
			}}
		}
		metrics.ObserveExternalCall(string(types.SalesTaxProviderTaxJar), "error", started)
		return failed(StageTransport, err)
	}
	metrics.ObserveExternalCall(string(types.SalesTaxProviderTaxJar), strconv.Itoa(resp.StatusCode), started)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Failure: &Failure{
			Stage:      StageStatus,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(resp.Body),
			Err:        ierr.NewError("TaxJar returned a non-success status").Mark(ierr.ErrHTTPClient),
		}}
	}

	var taxResp TaxResponse
	if err := json.Unmarshal(resp.Body, &taxResp); err != nil {
		return Result{Failure: &Failure{
			Stage:      StageDecode,
			StatusCode: resp.StatusCode,
			Detail:     truncate(string(resp.Body), 512),
			Err:        ierr.WithError(err).WithHint("Invalid response from TaxJar").Mark(ierr.ErrInternal),
		}}
	}
	if taxResp.Tax == nil {
		return Result{Failure: &Failure{
			Stage:      StageDecode,
			StatusCode: resp.StatusCode,
			Detail:     truncate(string(resp.Body), 512),
			Err:        ierr.NewError("TaxJar response has no tax object").Mark(ierr.ErrInternal),
		}}
	}

	log.Debugw("TaxJar calculated tax",
		"amount_to_collect", taxResp.Tax.AmountToCollect.String(),
		"has_nexus", taxResp.Tax.HasNexus,
		"duration_ms", time.Since(started).Milliseconds())

	return Result{Tax: taxResp.Tax}
}

// errorDetail extracts a readable message from a TaxJar error body
func errorDetail(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Error != "" || errResp.Detail != "") {
		if errResp.Detail == "" {
			return errResp.Error
		}
		if errResp.Error == "" {
			return errResp.Detail
		}
		return errResp.Error + " - " + errResp.Detail
	}
	return truncate(string(body), 512)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
