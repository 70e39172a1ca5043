package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"gradebook/archive"
	"gradebook/exporter"
	"gradebook/models"
	"gradebook/roster"
	"gradebook/snapshot"
	"gradebook/stats"
)

func init() {
	// .env is only needed for the database archive; running without one is fine.
	godotenv.Load()
}

func main() {
	gb := roster.New()

	fmt.Print("Load sample data? (y/n): ")
	if strings.ToLower(readChoice()) == "y" {
		gb = sampleData()
		color.Green("Sample data loaded.")
	}

	for {
		displayMenu()
		choice := readChoice()

		switch choice {
		case "1":
			addStudent(gb)
		case "2":
			viewAllStudents(gb)
		case "3":
			searchStudents(gb)
		case "4":
			viewStudentByRoll(gb)
		case "5":
			editStudent(gb)
		case "6":
			deleteStudent(gb)
		case "7":
			displayStatistics(gb)
		case "8":
			saveSnapshot(gb)
		case "9":
			gb = loadSnapshot(gb)
		case "10":
			exportCSV(gb)
		case "11":
			exportExcel(gb)
		case "12":
			archiveToDatabase(gb)
		case "13":
			gb = restoreFromDatabase(gb)
		case "14":
			color.Green("Thank you for using the Student Gradebook!")
			return
		default:
			color.Red("Invalid choice. Please try again.")
		}
	}
}

func displayMenu() {
	color.Cyan("\n=== Student Gradebook ===")
	fmt.Println("1. Add Student")
	fmt.Println("2. View All Students")
	fmt.Println("3. Search by Name")
	fmt.Println("4. View Student by Roll")
	fmt.Println("5. Edit Student")
	fmt.Println("6. Delete Student")
	fmt.Println("7. Class Statistics")
	fmt.Println("8. Save Snapshot (JSON)")
	fmt.Println("9. Load Snapshot (JSON)")
	fmt.Println("10. Export CSV")
	fmt.Println("11. Export Excel")
	fmt.Println("12. Archive to Database")
	fmt.Println("13. Restore from Database")
	fmt.Println("14. Exit")
	fmt.Print("\nEnter your choice (1-14): ")
}

func addStudent(gb *roster.Roster) {
	fmt.Print("Name: ")
	name := readString()
	if name == "" {
		color.Red("Name must not be empty.")
		return
	}
	roll := readInt("Roll (integer): ")

	s := models.NewStudent(name, roll)
	if err := gb.Add(s); err != nil {
		color.Red("Failed to add student: %v", err)
		return
	}

	fmt.Println("Enter marks for subjects. Type 'done' when finished.")
	for {
		fmt.Print(" Subject name (or 'done'): ")
		subject := readString()
		if strings.ToLower(subject) == "done" {
			break
		}
		mark := readFloat(fmt.Sprintf("  Mark for %s (0-100): ", subject))
		if err := s.SetMark(subject, mark); err != nil {
			color.Red("  %v", err)
		}
	}
	color.Green("Student added.")
}

func viewAllStudents(gb *roster.Roster) {
	if gb.Len() == 0 {
		color.Yellow("No students.")
		return
	}
	color.Yellow("\nAll Students (%d)", gb.Len())
	exporter.RenderTable(os.Stdout, gb)
}

func searchStudents(gb *roster.Roster) {
	fmt.Print("Enter name substring to search: ")
	query := readString()

	results := gb.SearchByName(query)
	if len(results) == 0 {
		color.Yellow("No matches.")
		return
	}
	color.Yellow("\nMatches for %q", query)
	exporter.RenderStudents(os.Stdout, gb, results)
}

func viewStudentByRoll(gb *roster.Roster) {
	roll := readInt("Enter roll: ")
	s, err := gb.Get(roll)
	if err != nil {
		color.Red("Not found.")
		return
	}
	showStudentDetails(s)
}

func showStudentDetails(s *models.Student) {
	color.Yellow("\n%s (roll %d)", s.Name, s.Roll)
	if len(s.Marks) == 0 {
		fmt.Println("No marks recorded.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Subject", "Score"})
	for _, subject := range exporter.SubjectsOf(s) {
		table.Append([]string{subject, fmt.Sprintf("%.1f", s.Marks[subject])})
	}
	table.Render()

	if avg, ok := s.Average(); ok {
		fmt.Printf("Average: %.2f\n", avg)
	}
}

func editStudent(gb *roster.Roster) {
	roll := readInt("Enter roll to edit: ")
	s, err := gb.Get(roll)
	if err != nil {
		color.Red("No student with that roll.")
		return
	}

	fmt.Println("1. Edit name")
	fmt.Println("2. Add/Edit a mark")
	fmt.Println("3. Remove a mark")
	fmt.Print("Choose (1-3): ")

	switch readChoice() {
	case "1":
		fmt.Print("New name: ")
		if err := gb.Rename(roll, readString()); err != nil {
			color.Red("Failed to rename: %v", err)
			return
		}
		color.Green("Name updated.")
	case "2":
		fmt.Print("Subject name: ")
		subject := readString()
		mark := readFloat("Mark (0-100): ")
		if err := s.SetMark(subject, mark); err != nil {
			color.Red("%v", err)
			return
		}
		color.Green("Mark set.")
	case "3":
		fmt.Print("Subject name to remove: ")
		if !s.RemoveMark(readString()) {
			color.Red("Subject not found.")
			return
		}
		color.Green("Removed.")
	default:
		color.Red("Invalid option.")
	}
}

func deleteStudent(gb *roster.Roster) {
	roll := readInt("Enter roll to delete: ")
	if err := gb.Remove(roll); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			color.Red("Not found.")
		} else {
			color.Red("Failed to delete: %v", err)
		}
		return
	}
	color.Green("Deleted.")
}

func displayStatistics(gb *roster.Roster) {
	if avg, ok := stats.ClassAverage(gb); ok {
		color.Yellow("\nClass average: %.2f", avg)
	} else {
		color.Yellow("\nNo averages available yet.")
	}

	top := stats.TopN(gb, 3)
	if len(top) > 0 {
		color.Yellow("\nTop %d Students", len(top))
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Rank", "Roll", "Name", "Score"})
		for i, ranked := range top {
			table.Append([]string{
				strconv.Itoa(i + 1),
				strconv.Itoa(ranked.Student.Roll),
				ranked.Student.Name,
				fmt.Sprintf("%.2f", ranked.Score),
			})
		}
		table.Render()
	}

	distribution := stats.GradeDistribution(gb)
	color.Yellow("\nGrade Distribution")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Grade", "Students"})
	for _, grade := range stats.Grades {
		table.Append([]string{string(grade), strconv.Itoa(distribution[grade])})
	}
	table.Render()
}

func saveSnapshot(gb *roster.Roster) {
	fmt.Print("JSON filepath to save (e.g. students.json): ")
	path := readString()
	if err := snapshot.SaveFile(path, gb); err != nil {
		color.Red("Error saving: %v", err)
		return
	}
	color.Green("Saved %d students to %s.", gb.Len(), path)
}

func loadSnapshot(gb *roster.Roster) *roster.Roster {
	fmt.Print("JSON filepath to load (e.g. students.json): ")
	path := readString()

	loaded, err := snapshot.LoadFile(path)
	if err != nil {
		color.Red("Error loading: %v", err)
		return gb
	}
	color.Green("Loaded %d students from %s.", loaded.Len(), path)
	return loaded
}

func exportCSV(gb *roster.Roster) {
	fmt.Print("CSV filepath to export (e.g. students.csv): ")
	path := readString()
	if err := exporter.ExportCSV(path, gb); err != nil {
		color.Red("Error exporting: %v", err)
		return
	}
	color.Green("Exported %d students to %s.", gb.Len(), path)
}

func exportExcel(gb *roster.Roster) {
	fmt.Print("XLSX filepath to export (e.g. students.xlsx): ")
	path := readString()
	if err := exporter.ExportXLSX(path, gb); err != nil {
		color.Red("Error exporting: %v", err)
		return
	}
	color.Green("Exported %d students to %s.", gb.Len(), path)
}

func archiveToDatabase(gb *roster.Roster) {
	store, err := archive.Open()
	if err != nil {
		color.Red("Error connecting to archive: %v", err)
		return
	}
	defer store.Close()

	if err := store.SaveRoster(gb); err != nil {
		color.Red("Error archiving: %v", err)
		return
	}
	color.Green("Archived %d students to the database.", gb.Len())
}

func restoreFromDatabase(gb *roster.Roster) *roster.Roster {
	store, err := archive.Open()
	if err != nil {
		color.Red("Error connecting to archive: %v", err)
		return gb
	}
	defer store.Close()

	restored, err := store.LoadRoster()
	if err != nil {
		color.Red("Error restoring: %v", err)
		return gb
	}
	color.Green("Restored %d students from the database.", restored.Len())
	return restored
}

func sampleData() *roster.Roster {
	gb := roster.New()
	for _, fixture := range []struct {
		name  string
		roll  int
		marks map[string]float64
	}{
		{"Aman Koli", 101, map[string]float64{"Math": 85, "Physics": 78, "Chemistry": 90}},
		{"Bala Rao", 102, map[string]float64{"Math": 65, "Physics": 70}},
		{"Chitra Sen", 103, map[string]float64{"Math": 92, "English": 88, "Biology": 85}},
	} {
		s := models.NewStudent(fixture.name, fixture.roll)
		for subject, mark := range fixture.marks {
			if err := s.SetMark(subject, mark); err != nil {
				log.Printf("Warning: skipping sample mark: %v", err)
			}
		}
		if err := gb.Add(s); err != nil {
			log.Printf("Warning: skipping sample student: %v", err)
		}
	}
	return gb
}

func readChoice() string {
	var input string
	fmt.Scanln(&input)
	return strings.TrimSpace(input)
}

func readString() string {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

func readInt(prompt string) int {
	for {
		fmt.Print(prompt)
		if i, err := strconv.Atoi(readString()); err == nil {
			return i
		}
		color.Red("Please enter a valid integer.")
	}
}

func readFloat(prompt string) float64 {
	for {
		fmt.Print(prompt)
		if f, err := strconv.ParseFloat(readString(), 64); err == nil {
			return f
		}
		color.Red("Please enter a valid number.")
	}
}
