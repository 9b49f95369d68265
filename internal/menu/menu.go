// Package menu implementa el menú de texto interactivo sobre shelters.Service.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shelter-registry/internal/domain/shelters"
)

const banner = `
--- SHELTER REGISTRY MAIN MENU ---
1. View Shelter Inventory
2. Move Animal Between Shelters
3. Update Animal Status
4. Adopt Animal
5. View Shelter Revenue Report
6. Exit`

type session struct {
	svc *shelters.Service
	in  *bufio.Scanner
	out io.Writer
}

// Run ejecuta el loop hasta que el usuario elige Exit (que guarda el dataset)
// o se termina el input. Cada operación que muta ya persiste por sí sola.
func Run(ctx context.Context, in io.Reader, out io.Writer, svc *shelters.Service) error {
	s := &session{svc: svc, in: bufio.NewScanner(in), out: out}

	for {
		fmt.Fprintln(s.out, banner)
		choice, ok := s.prompt("Enter choice: ")
		if !ok {
			// EOF: mismo cierre que Exit, sin el mensaje
			return svc.Save(ctx)
		}

		switch choice {
		case "1":
			if err := PrintInventory(s.out, svc.Inventory(ctx)); err != nil {
				return err
			}
		case "2":
			s.move(ctx)
		case "3":
			s.update(ctx)
		case "4":
			s.adopt(ctx)
		case "5":
			if err := PrintRevenue(s.out, svc.Revenue(ctx)); err != nil {
				return err
			}
		case "6":
			if err := svc.Save(ctx); err != nil {
				PrintError(s.out, err)
				return err
			}
			fmt.Fprintln(s.out, "Data saved.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option. Try again.")
		}
	}
}

// prompt devuelve false cuando no hay más input.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) move(ctx context.Context) {
	id, ok := s.prompt("Enter Animal ID to move: ")
	if !ok {
		return
	}
	// se valida el animal antes de listar refugios
	if !s.svc.Exists(ctx, id) {
		fmt.Fprintln(s.out, "Animal not found.")
		return
	}

	fmt.Fprintln(s.out, "Available shelters:")
	for i, sh := range s.svc.Inventory(ctx) {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, sh.Name)
	}

	raw, ok := s.prompt("Move to shelter number: ")
	if !ok {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid input.")
		return
	}

	m, err := s.svc.Move(ctx, id, n-1)
	if err != nil {
		PrintError(s.out, err)
		return
	}
	PrintMovement(s.out, m)
}

func (s *session) update(ctx context.Context) {
	id, ok := s.prompt("Enter Animal ID: ")
	if !ok {
		return
	}
	if !s.svc.Exists(ctx, id) {
		fmt.Fprintln(s.out, "Animal not found.")
		return
	}

	fmt.Fprintln(s.out, "1. Update Health Status")
	fmt.Fprintln(s.out, "2. Update Adoption Status")
	choice, ok := s.prompt("Choose option: ")
	if !ok {
		return
	}

	var (
		u   shelters.Update
		err error
	)
	switch choice {
	case "1":
		v, ok := s.prompt("Enter new health status: ")
		if !ok {
			return
		}
		u, err = s.svc.UpdateHealth(ctx, id, v)
	case "2":
		v, ok := s.prompt("Enter new adoption status: ")
		if !ok {
			return
		}
		u, err = s.svc.UpdateStatus(ctx, id, v)
	default:
		fmt.Fprintln(s.out, "Invalid option.")
		return
	}

	if err != nil {
		PrintError(s.out, err)
		return
	}
	fmt.Fprintln(s.out, u.Message())
}

func (s *session) adopt(ctx context.Context) {
	id, ok := s.prompt("Enter Animal ID to adopt: ")
	if !ok {
		return
	}

	a, err := s.svc.Adopt(ctx, id)
	if err != nil {
		PrintError(s.out, err)
		return
	}
	PrintAdoption(s.out, a)
}
