package rpcclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/pkg/errors"
)

func NewRpcClient(hostPort string) (client *RpcClient, err error) {
	if hostPort == "" {
		err = errors.Wrap(hl.ErrInvalidArgument, "rpc host/port is empty")
		return
	}
	if !strings.Contains(hostPort, "://") {
		hostPort = "http://" + hostPort
	}

	client = &RpcClient{
		HostPort: strings.TrimRight(hostPort, "/"),
		Http:     http.DefaultClient,
	}
	return
}

// RpcClient reads the state exposed by a running `hederalegacy serve`.
type RpcClient struct {
	HostPort string
	Http     *http.Client
}

func (c *RpcClient) req(method string, path string, body io.Reader) (rsp *http.Response, out []byte, err error) {
	req, err2 := http.NewRequest(method, c.HostPort+path, body)
	if err2 != nil {
		err = errors.WithStack(err2)
		return
	}

	rsp, err = c.Http.Do(req)
	if err != nil {
		err = errors.WithStack(err)
		return
	}
	defer rsp.Body.Close()

	out, err = io.ReadAll(rsp.Body)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		errRsp := &RpcError{}
		if decodeErr := json.Unmarshal(out, errRsp); decodeErr == nil && errRsp.Err != "" {
			err = errRsp

			if stdErr := errRsp.StdErr(); stdErr != nil {
				err = stdErr
			}

			return
		}

		err = errors.Wrapf(hl.ErrRpcFailed, "rpc response code %d with body %s", rsp.StatusCode, string(out))
		return
	}

	return
}

func (c *RpcClient) get(path string, target any) (err error) {
	_, rspBody, err := c.req(http.MethodGet, path, nil)
	if err != nil {
		return
	}

	if err = json.Unmarshal(rspBody, target); err != nil {
		err = errors.Wrapf(err, "unable to unmarshal body: %s", string(rspBody))
	}
	return
}

type StatusOut struct {
	Network     hl.Network `json:"network"`
	Operator    string     `json:"operator"`
	Deployments int        `json:"deployments"`
}

func (c *RpcClient) GetStatus() (out *StatusOut, err error) {
	out = &StatusOut{}
	err = c.get("/status", out)
	return
}

func (c *RpcClient) GetBalance(account string) (out *hl.Balance, err error) {
	out = &hl.Balance{}
	err = c.get(fmt.Sprintf("/balance/%s", url.PathEscape(account)), out)
	return
}

func (c *RpcClient) GetToken(tokenID string) (out *hl.TokenInfo, err error) {
	out = &hl.TokenInfo{}
	err = c.get(fmt.Sprintf("/token/%s", url.PathEscape(tokenID)), out)
	return
}

func (c *RpcClient) GetDeployments() (out []hl.Deployment, err error) {
	err = c.get("/deployments", &out)
	return
}

func (c *RpcClient) GetDeployment(name string) (out *hl.Deployment, err error) {
	out = &hl.Deployment{}
	err = c.get(fmt.Sprintf("/deployments/%s", url.PathEscape(name)), out)
	return
}

// GetJournal returns the newest entries first; limit <= 0 returns all of them.
func (c *RpcClient) GetJournal(limit int) (out []hl.JournalEntry, err error) {
	path := "/journal"
	if limit > 0 {
		path = fmt.Sprintf("/journal?limit=%d", limit)
	}
	err = c.get(path, &out)
	return
}

type RpcError struct {
	Err     string `json:"error"`
	Details string `json:"details"`
}

func (r *RpcError) Error() string {
	return r.Err
}

// StdErr maps the reported error back onto a package sentinel so callers can
// use errors.Is across the wire.
func (r *RpcError) StdErr() error {
	for _, a := range hl.AllErrors {
		if r.Err == a.Error() {
			return errors.Wrap(a, r.Details)
		}
	}
	return nil
}
