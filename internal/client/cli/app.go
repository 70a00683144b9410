package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/wotracker/internal/client/client"
	"github.com/dmitrijs2005/wotracker/internal/client/config"
)

// defaultPageSize is the page size the CLI asks for when listing.
const defaultPageSize = 12

type App struct {
	config   *config.Config
	client   client.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run blocks until the user exits the REPL or stdin is closed.
func (a *App) Run(ctx context.Context) {
	if err := a.client.Ping(ctx); err != nil {
		log.Printf("server %s is not reachable: %s", a.config.ServerURL, err.Error())
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}
