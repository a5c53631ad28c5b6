package api

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	apipb "github.com/rajiknows/mockchain/api"
	"github.com/rajiknows/mockchain/internal/config"
	"github.com/rajiknows/mockchain/internal/utils/logging"
)

type Client struct {
	cc *grpc.ClientConn
}

func (a *Client) Close() error {
	return a.cc.Close()
}

func (a *Client) Ledger() apipb.LedgerClient {
	return apipb.NewLedgerClient(a.cc)
}

// NewClient dials the daemon, retrying with backoff until the attempt
// limit is hit or ctx ends.
func NewClient(ctx context.Context) (*Client, error) {
	addr := viper.GetString(config.Cfg_daemonAddr)

	bo := &backoff.Backoff{
		Min: 250 * time.Millisecond,
		Max: 5 * time.Second,
	}

	for {
		dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		cc, err := grpc.DialContext(dctx, addr,
			grpc.WithInsecure(),
			grpc.WithBlock(),
			grpc.WithDefaultCallOptions(grpc.CallContentSubtype(apipb.CodecName)),
		)
		cancel()
		if err == nil {
			return &Client{cc: cc}, nil
		}

		if bo.Attempt() >= 3 {
			return nil, errors.Wrap(err, "connecting to daemon")
		}

		d := bo.Duration()
		logging.WithError(err).Warnf("daemon not reachable, retrying in %s", d)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d):
		}
	}
}
