package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"dascopy/internal/usecasees/structs"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	statusUrlPath    = "/api/v1/status"
	positionsUrlPath = "/api/v1/positions"
	maxSellUrlPath   = "/api/v1/maxsell"
	locateUrlPath    = "/api/v1/locate"
	orderUrlPath     = "/api/v1/order"
	eventsUrlPath    = "/api/v1/events"

	eventsWaitSeconds = 30
	longCallGrace     = 5 * time.Second
)

var (
	ErrCodeUnknownOrder   = -2011
	ErrCodeLocateRejected = -3021
	ErrUnknownOrder       = fmt.Errorf("%s", "Unknown order sent.")
	ErrLocateRejected     = fmt.Errorf("%s", "Locate rejected by route.")
)

type ErrStruct struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// BrokerController talks to one broker-bridge terminal session over its
// REST API. One instance per account.
//
// The injected client carries a short global timeout for plain REST
// calls. Locate and the events long-poll are held open by the bridge, so
// they go through longClient, bounded per request by a context deadline
// instead of the client timeout.
type BrokerController struct {
	client     *http.Client
	longClient *http.Client
	crypto     *CryptoController
	logger     *logrus.Logger

	baseURL   string
	accountID string
	apiKey    string
}

func NewBrokerController(
	client *http.Client,
	crypto *CryptoController,
	baseURL string,
	accountID string,
	apiKey string,
	logger *logrus.Logger,
) *BrokerController {
	return &BrokerController{
		client:     client,
		longClient: &http.Client{Transport: client.Transport},
		crypto:     crypto,
		baseURL:    baseURL,
		accountID:  accountID,
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (c *BrokerController) AccountID() string {
	return c.accountID
}

func (c *BrokerController) IsAlive() bool {
	bURL, err := c.buildURL(statusUrlPath, nil)
	if err != nil {
		return false
	}

	body, err := c.send(http.MethodGet, bURL, nil)
	if err != nil {
		return false
	}

	var status struct {
		Alive bool `json:"alive"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return false
	}

	return status.Alive
}

func (c *BrokerController) GetPositions() ([]structs.Position, error) {
	bURL, err := c.buildURL(positionsUrlPath, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.send(http.MethodGet, bURL, nil)
	if err != nil {
		return nil, err
	}

	var positions []structs.Position
	if err := json.Unmarshal(body, &positions); err != nil {
		return nil, err
	}

	return positions, nil
}

func (c *BrokerController) GetOrder(orderID int64) (*structs.MasterOrderEvent, error) {
	bURL, err := c.buildURL(path.Join(orderUrlPath, strconv.FormatInt(orderID, 10)), nil)
	if err != nil {
		return nil, err
	}

	body, err := c.send(http.MethodGet, bURL, nil)
	if err != nil {
		return nil, err
	}

	var order structs.MasterOrderEvent
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *BrokerController) GetMaxSell(symbol string) (int64, error) {
	bURL, err := c.buildURL(maxSellUrlPath, url.Values{"symbol": {symbol}})
	if err != nil {
		return 0, err
	}

	body, err := c.send(http.MethodGet, bURL, nil)
	if err != nil {
		return 0, err
	}

	var out struct {
		Symbol  string `json:"symbol"`
		MaxSell int64  `json:"maxSell"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, err
	}

	return out.MaxSell, nil
}

func (c *BrokerController) Locate(ctx context.Context, symbol string, quantity int64, maxPrice float64, timeout time.Duration) (*structs.LocateResult, error) {
	bURL, err := c.buildURL(locateUrlPath, nil)
	if err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(struct {
		Symbol         string  `json:"symbol"`
		Quantity       int64   `json:"quantity"`
		MaxPrice       float64 `json:"maxPrice"`
		TimeoutSeconds int64   `json:"timeoutSeconds"`
	}{
		Symbol:         symbol,
		Quantity:       quantity,
		MaxPrice:       maxPrice,
		TimeoutSeconds: int64(timeout.Seconds()),
	})
	if err != nil {
		return nil, err
	}

	// The bridge holds the request open for up to the retry timeout.
	reqCtx, cancel := context.WithTimeout(ctx, timeout+longCallGrace)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, bURL.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}

	body, err := c.doWith(c.longClient, req)
	if err != nil {
		return nil, err
	}

	var result structs.LocateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *BrokerController) SubmitOrder(order *structs.OrderRequest) (int64, error) {
	bURL, err := c.buildURL(orderUrlPath, nil)
	if err != nil {
		return 0, err
	}

	reqBody, err := json.Marshal(order)
	if err != nil {
		return 0, err
	}

	body, err := c.send(http.MethodPost, bURL, reqBody)
	if err != nil {
		return 0, err
	}

	var out struct {
		OrderID int64  `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, err
	}

	return out.OrderID, nil
}

func (c *BrokerController) CancelOrder(orderID int64) error {
	bURL, err := c.buildURL(path.Join(orderUrlPath, strconv.FormatInt(orderID, 10)), nil)
	if err != nil {
		return err
	}

	if _, err := c.send(http.MethodDelete, bURL, nil); err != nil {
		return err
	}

	return nil
}

func (c *BrokerController) ReplaceOrder(orderID, quantity int64, price float64) (int64, error) {
	bURL, err := c.buildURL(path.Join(orderUrlPath, strconv.FormatInt(orderID, 10)), nil)
	if err != nil {
		return 0, err
	}

	reqBody, err := json.Marshal(struct {
		Quantity int64   `json:"quantity"`
		Price    float64 `json:"price"`
	}{
		Quantity: quantity,
		Price:    price,
	})
	if err != nil {
		return 0, err
	}

	body, err := c.send(http.MethodPut, bURL, reqBody)
	if err != nil {
		return 0, err
	}

	var out struct {
		OrderID int64 `json:"orderId"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, err
	}

	return out.OrderID, nil
}

// StreamEvents long-polls the bridge event endpoint and feeds a single
// ordered channel. The channel is closed when ctx is cancelled.
func (c *BrokerController) StreamEvents(ctx context.Context) (<-chan structs.MasterOrderEvent, error) {
	out := make(chan structs.MasterOrderEvent, 256)

	go func() {
		defer close(out)

		var cursor int64

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			bURL, err := c.buildURL(eventsUrlPath, url.Values{
				"cursor": {strconv.FormatInt(cursor, 10)},
				"wait":   {strconv.Itoa(eventsWaitSeconds)},
			})
			if err != nil {
				c.logger.WithError(err).Error("events url")
				return
			}

			pollCtx, cancel := context.WithTimeout(ctx, eventsWaitSeconds*time.Second+longCallGrace)

			req, err := http.NewRequestWithContext(pollCtx, http.MethodGet, bURL.String(), nil)
			if err != nil {
				cancel()
				c.logger.WithError(err).Error("events request")
				return
			}

			body, err := c.doWith(c.longClient, req)
			cancel()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.WithError(err).Warn("events poll failed, retrying")
				time.Sleep(time.Second)
				continue
			}

			var batch struct {
				Cursor int64                      `json:"cursor"`
				Events []structs.MasterOrderEvent `json:"events"`
			}
			if err := json.Unmarshal(body, &batch); err != nil {
				c.logger.WithError(err).Error("events decode")
				time.Sleep(time.Second)
				continue
			}

			cursor = batch.Cursor
			for _, event := range batch.Events {
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (c *BrokerController) buildURL(urlPath string, query url.Values) (*url.URL, error) {
	bURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	bURL.Path = path.Join(bURL.Path, urlPath)

	q := bURL.Query()
	for key, vals := range query {
		for _, v := range vals {
			q.Set(key, v)
		}
	}
	q.Set("account", c.accountID)
	q.Set("timestamp", fmt.Sprintf("%d", time.Now().UnixMilli()))

	sig := c.crypto.GetSignature(q.Encode())
	q.Set("signature", sig)

	bURL.RawQuery = q.Encode()

	return bURL, nil
}

func (c *BrokerController) send(method string, url *url.URL, body []byte) ([]byte, error) {
	req, err := http.NewRequest(method, url.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *BrokerController) do(req *http.Request) ([]byte, error) {
	return c.doWith(c.client, req)
}

func (c *BrokerController) doWith(client *http.Client, req *http.Request) ([]byte, error) {
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("X-DAS-APIKEY", c.apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		respErr, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusBadRequest {
			var errMsg ErrStruct
			if err := json.Unmarshal(respErr, &errMsg); err != nil {
				return nil, err
			}
			switch errMsg.Code {
			case ErrCodeUnknownOrder:
				return nil, ErrUnknownOrder
			case ErrCodeLocateRejected:
				return nil, ErrLocateRejected
			}

			return nil, fmt.Errorf("%s Err:%+v", "Unknown error", errMsg)
		}

		return nil, errors.New(fmt.Sprintf("statusCode %d; resp %s;", resp.StatusCode, respErr))
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return out, nil
}
