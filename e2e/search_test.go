//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWidget(t *testing.T, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartServer())
	require.NoError(t, tf.StartApp(args...))
	require.True(t, tf.SeePlain("Type here to find products"), "input should render")
	return tf
}

func TestTypingShowsMatches(t *testing.T) {
	t.Parallel()
	tf := startWidget(t)

	require.NoError(t, tf.Type("laptop"))
	require.True(t, tf.SeePlain("Apple MacBook Pro"), tf.SnapshotPlain())
	require.True(t, tf.SeePlain("HP Spectre x360"))
	require.True(t, tf.SeePlain("link: http://localhost:3000/?q=laptop"))
}

func TestNothingFound(t *testing.T) {
	t.Parallel()
	tf := startWidget(t)

	require.NoError(t, tf.Type("zzzz"))
	require.True(t, tf.SeePlain("Nothing found"), tf.SnapshotPlain())
}

func TestKeyboardSelectionFillsInput(t *testing.T) {
	t.Parallel()
	tf := startWidget(t)

	require.NoError(t, tf.Type("xbox"))
	require.True(t, tf.SeePlain("Powerful gaming console"))

	require.NoError(t, tf.SendKeys(KeyDown))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("q=Xbox+Series+X"), tf.SnapshotPlain())
}

func TestLinkSeedsQueryAndIsPrintedOnExit(t *testing.T) {
	t.Parallel()
	tf := startWidget(t, "--link", "http://localhost:3000/?q=headphones")

	require.True(t, tf.SeePlain("Bose QC35"), tf.SnapshotPlain())

	require.NoError(t, tf.SendKeys(KeyCtrlU))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tf.Type("tv"))
	require.True(t, tf.SeePlain("Sony Bravia"))

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.Wait(3*time.Second))

	plain := tf.SnapshotPlain()
	require.True(t, strings.HasSuffix(strings.TrimSpace(plain), "http://localhost:3000/?q=tv"), plain)
}

func TestServerErrorIsShown(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	// no server: the endpoint refuses connections
	addr, err := freeAddr()
	require.NoError(t, err)
	require.NoError(t, tf.StartApp("--endpoint", "http://"+addr+"/api/search"))
	require.True(t, tf.SeePlain("quickfind"))

	require.NoError(t, tf.Type("tv"))
	require.True(t, tf.SeePlain("Error: "), tf.SnapshotPlain())
}
