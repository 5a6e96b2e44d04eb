package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/common"
)

func (a *App) getStatus() string {
	_, degraded := a.fetchOutcome()
	if degraded {
		return "(backup)"
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to the decretos CLI (type 'help' for commands)")

	if err := a.Refresh(ctx); err != nil {
		if errors.Is(err, common.ErrNoBackup) {
			fmt.Println("No remote and no local backup yet; starting empty.")
		} else {
			fmt.Println("Initial refresh failed:", err.Error())
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
