package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.isUnlocked() {
		return "(unlocked)"
	}
	return "(locked)"
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to trace diary (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("trace %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: status, setpass, verify, lock, write <date>, read <date>, days <year> <month>, onthisday <month> <day> <year>, exit")
		case "status":
			a.status(ctx)
		case "setpass":
			a.setPassword(ctx)
		case "verify":
			a.verifyPassword(ctx)
		case "lock":
			a.lock(ctx)
		case "write":
			a.writeEntry(ctx, args)
		case "read":
			a.readEntry(ctx, args)
		case "days":
			a.daysInMonth(ctx, args)
		case "onthisday":
			a.onThisDay(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
