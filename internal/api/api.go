package api

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"google.golang.org/grpc"

	"github.com/rajiknows/mockchain/internal/node"
	"github.com/rajiknows/mockchain/internal/utils/logging"
)

// APIHandler is a self-registering gRPC service backed by the node's
// ledger. Implementations append themselves to reg in an init func and
// receive the assembled Api through Setup before the server starts.
type APIHandler interface {
	Setup(*Api) error
	Desc() *grpc.ServiceDesc
}

var (
	reg = []APIHandler{}
)

type BaseHandler struct {
	a *Api
}

func (b *BaseHandler) Setup(a *Api) error {
	b.a = a
	return nil
}

// Api serves the ledger RPC surface of a single node.
type Api struct {
	n *node.Node
	g *grpc.Server
}

func NewAPI(n *node.Node) (*Api, error) {
	a := &Api{
		n: n,
		g: newGRPCServer(),
	}

	for _, s := range reg {
		a.g.RegisterService(s.Desc(), s)
		if err := s.Setup(a); err != nil {
			return nil, errors.Wrap(err, "registering service")
		}

		logging.WithField("service", s.Desc().ServiceName).Debug("registered api service")
	}

	return a, nil
}

func (a *Api) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "listening on api addr")
	}

	return a.g.Serve(lis)
}

// Shutdown stops the server gracefully, falling back to a hard stop when
// ctx expires first. Long-lived watch streams hold a graceful stop open,
// so callers should bound ctx.
func (a *Api) Shutdown(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		a.g.GracefulStop()
		close(done)
	}()

	select {
	case <-ctx.Done():
		a.g.Stop()
		return ctx.Err()
	case <-done:
		return nil
	}
}
