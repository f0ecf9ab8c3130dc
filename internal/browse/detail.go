package browse

import (
	"context"
	"fmt"
	"strconv"
)

// Open は指定IDのユーザーを詳細表示します。数値でない、または正でないIDは
// ここで拒否し、ストアには触れません。
func (a *App) Open(ctx context.Context, raw string) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		printlnFn("Usage: open <numeric id>")
		return
	}
	a.lastFetch = func(ctx context.Context) {
		a.dir.FetchUserByID(ctx, id)
		a.renderDetail()
	}
	a.lastFetch(ctx)
}

// Select は表示済みの一覧からユーザーを選択します。再取得はしません。
// 一覧に無いIDはその場で報告し、ストアには触れません。
func (a *App) Select(ctx context.Context, raw string) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		printlnFn("Usage: select <numeric id>")
		return
	}
	for _, u := range a.dir.Snapshot().Users {
		if u.ID == id {
			a.dir.SetSelectedUser(&u)
			a.renderDetail()
			return
		}
	}
	printlnFn(fmt.Sprintf("User %d is not in the list. Use 'open %d' to fetch it.", id, id))
}

// Back は選択を解除して一覧表示に戻ります。
func (a *App) Back(ctx context.Context) {
	a.dir.SetSelectedUser(nil)
	a.renderList("")
}

// Retry はエラーを確認済みにして直前の取得をやり直します。
func (a *App) Retry(ctx context.Context) {
	a.dir.ClearError()
	if a.lastFetch == nil {
		printlnFn("Nothing to retry.")
		return
	}
	a.lastFetch(ctx)
}

func (a *App) renderDetail() {
	snap := a.dir.Snapshot()
	if snap.Error != "" {
		printlnFn("Error:", snap.Error)
		printlnFn("Type 'retry' to try again.")
		return
	}
	u := snap.SelectedUser
	if u == nil {
		printlnFn("No user selected.")
		return
	}

	// パスワードは上流がそのまま返してくるが、表示はしない
	printlnFn(fmt.Sprintf("User #%d", u.ID))
	printlnFn(fmt.Sprintf("  Username: %s", u.Username))
	printlnFn(fmt.Sprintf("  Name:     %s %s", u.Name.Firstname, u.Name.Lastname))
	printlnFn(fmt.Sprintf("  Email:    %s", u.Email))
	printlnFn(fmt.Sprintf("  Phone:    %s", u.Phone))
	printlnFn(fmt.Sprintf("  Address:  %s %d, %s %s",
		u.Address.Street, u.Address.Number, u.Address.City, u.Address.Zipcode))
	printlnFn(fmt.Sprintf("  Geo:      %s, %s", u.Address.Geolocation.Lat, u.Address.Geolocation.Long))
}
