package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	hl "github.com/alexdcox/hedera-legacy-go"
	"github.com/alexdcox/hedera-legacy-go/rpcclient"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var hostPort string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve balances, token info, deployments and the journal over http",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) (err error) {
			ledger, err := a.Ledger()
			if err != nil {
				return
			}

			server, err := NewHttpRpcServer(hostPort, a.config.Network, ledger, a.store)
			if err != nil {
				return
			}

			errs := make(chan error, 1)
			go func() {
				errs <- server.Start()
			}()

			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err = <-errs:
				return
			case <-c:
			}

			log.Info().Msg("caught interrupt/terminate signal, attempting graceful shutdown...")
			if err = server.Stop(); err != nil {
				return
			}
			log.Info().Msg("graceful shutdown complete")
			return
		},
	}
	cmd.Flags().StringVar(&hostPort, "rpchostport", "localhost:3002", "Set host:port for the http/rpc listener")

	return cmd
}

func NewHttpRpcServer(hostPort string, network hl.Network, ledger hl.Ledger, store hl.Store) (server *HttpRpcServer, err error) {
	if ledger == nil || store == nil {
		err = errors.Wrap(hl.ErrInvalidArgument, "http server needs a ledger and a store")
		return
	}

	server = &HttpRpcServer{
		hostPort: hostPort,
		network:  network,
		ledger:   ledger,
		store:    store,
	}
	server.app = server.newApp()

	return
}

type HttpRpcServer struct {
	app      *fiber.App
	hostPort string
	network  hl.Network
	ledger   hl.Ledger
	store    hl.Store
}

func (s *HttpRpcServer) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(func(c *fiber.Ctx) error {
		rsp := c.Next()
		log.Info().Msgf("http response: [%d] %s - %s %s", c.Response().StatusCode(), c.IP(), c.Method(), c.Path())
		return rsp
	})

	app.Get("/status", s.getStatus)
	app.Get("/balance/:account", s.getBalance)
	app.Get("/token/:id", s.getToken)
	app.Get("/deployments", s.getDeployments)
	app.Get("/deployments/:name", s.getDeployment)
	app.Get("/journal", s.getJournal)

	return app
}

func (s *HttpRpcServer) Start() (err error) {
	log.Info().Msgf("http/rpc server listening on %s", s.hostPort)
	return errors.WithStack(s.app.Listen(s.hostPort))
}

func (s *HttpRpcServer) Stop() (err error) {
	return errors.WithStack(s.app.Shutdown())
}

func (s *HttpRpcServer) errorResponse(c *fiber.Ctx, err error) error {
	statusCode := http.StatusInternalServerError

	reportedErr := err

	for match, code := range map[error]int{
		hl.ErrDeploymentNotFound: http.StatusNotFound,
		hl.ErrInvalidArgument:    http.StatusBadRequest,
		hl.ErrTokenNotSet:        http.StatusBadRequest,
	} {
		if errors.Is(err, match) {
			reportedErr = match
			statusCode = code
			break
		}
	}

	return c.Status(statusCode).JSON(rpcclient.RpcError{
		Err:     reportedErr.Error(),
		Details: fmt.Sprintf("%+v", err),
	})
}

func (s *HttpRpcServer) getStatus(c *fiber.Ctx) error {
	deployments, err := s.store.ListDeployments()
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(rpcclient.StatusOut{
		Network:     s.network,
		Operator:    s.ledger.Operator(),
		Deployments: len(deployments),
	})
}

func (s *HttpRpcServer) getBalance(c *fiber.Ctx) error {
	balance, err := s.ledger.Balance(c.Params("account"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(balance)
}

func (s *HttpRpcServer) getToken(c *fiber.Ctx) error {
	info, err := s.ledger.TokenInfo(c.Params("id"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(info)
}

func (s *HttpRpcServer) getDeployments(c *fiber.Ctx) error {
	deployments, err := s.store.ListDeployments()
	if err != nil {
		return s.errorResponse(c, err)
	}
	if deployments == nil {
		deployments = []hl.Deployment{}
	}
	return c.JSON(deployments)
}

func (s *HttpRpcServer) getDeployment(c *fiber.Ctx) error {
	deployment, err := s.store.GetDeployment(c.Params("name"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(deployment)
}

func (s *HttpRpcServer) getJournal(c *fiber.Ctx) error {
	limit := 0
	if q := c.Query("limit"); q != "" {
		var err error
		if limit, err = strconv.Atoi(q); err != nil {
			return s.errorResponse(c, errors.Wrapf(hl.ErrInvalidArgument, "limit '%s'", q))
		}
	}

	entries, err := s.store.ListJournal(limit)
	if err != nil {
		return s.errorResponse(c, err)
	}
	if entries == nil {
		entries = []hl.JournalEntry{}
	}
	return c.JSON(entries)
}
