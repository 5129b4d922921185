package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// udpClient sends each query in its own datagram exchange.
// Loss recovery is left to the client timeout.
type udpClient struct {
	client  *dns.Client
	address string
}

func newUDPClient(client *dns.Client, address string) *udpClient {
	return &udpClient{
		client:  client,
		address: address,
	}
}

func (c *udpClient) Query(ctx context.Context, request *dns.Msg) (
	response *dns.Msg, err error) {
	response, _, err = c.client.ExchangeContext(ctx, request, c.address)
	return response, err
}

func (c *udpClient) Close() (err error) { return nil }

// tcpClient keeps a single connection to the server, dialed
// on the first query and reused for the following ones.
type tcpClient struct {
	client  *dns.Client
	address string
	mutex   sync.Mutex
	conn    *dns.Conn
}

func newTCPClient(client *dns.Client, address string) *tcpClient {
	return &tcpClient{
		client:  client,
		address: address,
	}
}

func (c *tcpClient) Query(ctx context.Context, request *dns.Msg) (
	response *dns.Msg, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.conn == nil {
		c.conn, err = c.client.DialContext(ctx, c.address)
		if err != nil {
			return nil, fmt.Errorf("dialing: %w", err)
		}
	}

	deadline := time.Now().Add(c.client.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	err = c.conn.SetDeadline(deadline)
	if err != nil {
		return nil, fmt.Errorf("setting connection deadline: %w", err)
	}

	err = c.conn.WriteMsg(request)
	if err != nil {
		c.resetConn()
		return nil, fmt.Errorf("writing query: %w", err)
	}

	response, err = c.conn.ReadMsg()
	if err != nil {
		c.resetConn()
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return response, nil
}

func (c *tcpClient) resetConn() {
	_ = c.conn.Close()
	c.conn = nil
}

func (c *tcpClient) Close() (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.conn == nil {
		return nil
	}
	err = c.conn.Close()
	c.conn = nil
	return err
}
