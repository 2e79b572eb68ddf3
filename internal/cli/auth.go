package cli

import (
	"context"
	"fmt"
)

func (a *App) status(ctx context.Context) {
	st, err := a.authService.Status(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("password_set=%t needs_verify=%t unlocked=%t\n", st.PasswordSet, st.NeedsVerify, a.isUnlocked())
}

func (a *App) setPassword(ctx context.Context) {
	pw, err := GetPassword("Enter new password: ", a.out)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	confirm, err := GetPassword("Repeat new password: ", a.out)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if string(pw) != string(confirm) {
		fmt.Println("Passwords do not match")
		return
	}

	if err := a.authService.SetPassword(ctx, string(pw)); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Password set, diary unlocked")
}

func (a *App) verifyPassword(ctx context.Context) {
	pw, err := GetPassword("Enter password: ", a.out)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if err := a.authService.VerifyPassword(ctx, string(pw)); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Password verified, diary unlocked")
}

func (a *App) lock(ctx context.Context) {
	if err := a.cache.Clear(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Diary locked")
}
