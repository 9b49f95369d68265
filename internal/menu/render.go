package menu

import (
	"fmt"
	"io"
	"strconv"

	"shelter-registry/internal/domain/shelters"

	"github.com/pterm/pterm"
)

// Money formatea un monto sin decimales de más (250, 99.5).
func Money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func PrintInventory(out io.Writer, items []*shelters.Shelter) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, "No shelters loaded.")
		return err
	}

	for _, s := range items {
		fmt.Fprintf(out, "\n%s\n", pterm.Bold.Sprintf("Shelter: %s (%s)", s.Name, s.Address))
		if len(s.Animals) == 0 {
			fmt.Fprintln(out, "  No animals currently.")
			continue
		}

		data := pterm.TableData{{"ID", "Name", "Type", "Breed", "Age", "Health", "Status"}}
		for _, a := range s.Animals {
			data = append(data, []string{
				a.ID, a.Name, a.Type, a.Breed, fmt.Sprintf("%d yrs", a.Age), a.Health, a.Status,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
	}
	return nil
}

func PrintRevenue(out io.Writer, rep shelters.RevenueReport) error {
	fmt.Fprintf(out, "\n%s\n", pterm.Bold.Sprint("Shelter Revenue Report"))

	data := pterm.TableData{{"Shelter", "Adopted", "Revenue"}}
	for _, s := range rep.Shelters {
		data = append(data, []string{s.Name, strconv.Itoa(s.AdoptedCount), Money(s.Revenue)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	_, err = fmt.Fprintf(out, "Regional Total Revenue: %s\n", Money(rep.TotalRevenue))
	return err
}

func PrintMovement(out io.Writer, m shelters.Movement) {
	fmt.Fprintln(out, "\nMovement Record:")
	fmt.Fprintf(out, "Animal: %s - %s\n", m.AnimalID, m.AnimalName)
	fmt.Fprintf(out, "From: %s\n", m.FromShelter)
	fmt.Fprintf(out, "To: %s\n", m.ToShelter)
	if m.RecordID != "" {
		fmt.Fprintf(out, "Record: %s\n", m.RecordID)
	}
}

func PrintAdoption(out io.Writer, a shelters.Adoption) {
	fmt.Fprintf(out, "Animal adopted successfully. Adoption fee: %s\n", Money(float64(a.Fee)))
	if a.ReceiptID != "" {
		fmt.Fprintf(out, "Receipt: %s\n", a.ReceiptID)
	}
}

// PrintError es el formato único de fallas de operación.
func PrintError(out io.Writer, err error) {
	fmt.Fprintf(out, "Error: %s\n", err)
}
