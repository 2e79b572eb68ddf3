package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) writeEntry(ctx context.Context, args []string) {
	var date string
	switch len(args) {
	case 0:
		var err error
		date, err = GetSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
	case 1:
		date = args[0]
	default:
		fmt.Println("Usage: write <YYYY-MM-DD>")
		return
	}

	content, err := GetMultiline(a.reader, "Entry for "+date, a.out)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if err := a.diaryService.Write(ctx, date, content); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Saved")
}

func (a *App) readEntry(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: read <YYYY-MM-DD>")
		return
	}

	entry, err := a.diaryService.Read(ctx, args[0])
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("--- %s (%d characters) ---\n", entry.Date, entry.WordCount)
	fmt.Println(entry.Content)
}

func (a *App) daysInMonth(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: days <year> <month>")
		return
	}
	year, err1 := strconv.Atoi(args[0])
	month, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("Usage: days <year> <month>")
		return
	}

	days, err := a.diaryService.DaysInMonth(ctx, year, month)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Days with entries:", days)
}

func (a *App) onThisDay(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: onthisday <month> <day> <year>")
		return
	}
	month, err1 := strconv.Atoi(args[0])
	day, err2 := strconv.Atoi(args[1])
	year, err3 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Println("Usage: onthisday <month> <day> <year>")
		return
	}

	items, err := a.diaryService.OnThisDay(ctx, month, day, year)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(items) == 0 {
		fmt.Println("No historical entries")
		return
	}
	for _, item := range items {
		fmt.Printf("--- %s (%d characters) ---\n", item.Date, item.WordCount)
		if item.Preview != "" {
			fmt.Println(item.Preview)
		}
	}
}
