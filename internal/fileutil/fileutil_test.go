package fileutil

import "testing"

func TestUsageReportsNonZeroTotal(t *testing.T) {
	usage, err := Usage(t.TempDir())
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if usage.TotalBytes == 0 {
		t.Fatal("expected non-zero total")
	}
	if usage.AvailableBytes > usage.TotalBytes {
		t.Fatalf("available %d exceeds total %d", usage.AvailableBytes, usage.TotalBytes)
	}
}

func TestUsageMissingPath(t *testing.T) {
	if _, err := Usage("/definitely/not/a/path"); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestHumanBytes(t *testing.T) {
	cases := map[uint64]string{
		512:             "512 B",
		2048:            "2.0 KiB",
		5 * 1024 * 1024: "5.0 MiB",
	}
	for in, want := range cases {
		if got := HumanBytes(in); got != want {
			t.Fatalf("%d: expected %q, got %q", in, want, got)
		}
	}
}
