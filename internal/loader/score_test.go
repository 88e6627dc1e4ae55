package loader

import "testing"

func TestScoreEntryPointBonus(t *testing.T) {
	entry := FileCandidate{Path: "main.py", Score: 1.2, Tokens: 500}
	other := FileCandidate{Path: "util.py", Score: 1.2, Tokens: 500}

	if Score(entry) <= Score(other) {
		t.Errorf("entry point should outrank sibling: main=%v util=%v", Score(entry), Score(other))
	}
}

func TestScoreDirectorySignals(t *testing.T) {
	core := FileCandidate{Path: "src/engine.py", Score: 1.0, Tokens: 500}
	plain := FileCandidate{Path: "misc/engine.py", Score: 1.0, Tokens: 500}
	tests := FileCandidate{Path: "tests/engine.py", Score: 1.0, Tokens: 500}
	cfg := FileCandidate{Path: "config/engine.py", Score: 1.0, Tokens: 500}

	if Score(core) <= Score(plain) {
		t.Error("src/ should get a bonus over unclassified dirs")
	}
	if Score(tests) >= Score(plain) {
		t.Error("tests/ should be penalized")
	}
	if Score(cfg) >= Score(tests) {
		t.Error("config/ should rank below tests/")
	}
}

func TestScoreSegmentMatchIsExact(t *testing.T) {
	// "source" must not match the "src" segment rule.
	a := FileCandidate{Path: "source/engine.py", Score: 1.0, Tokens: 500}
	b := FileCandidate{Path: "misc/engine.py", Score: 1.0, Tokens: 500}
	if Score(a) != Score(b) {
		t.Errorf("substring must not trigger segment bonus: %v vs %v", Score(a), Score(b))
	}
}

func TestScoreSizePenalty(t *testing.T) {
	small := FileCandidate{Path: "a/x.py", Score: 1.0, Tokens: 50}
	medium := FileCandidate{Path: "a/x.py", Score: 1.0, Tokens: 500}
	large := FileCandidate{Path: "a/x.py", Score: 1.0, Tokens: 6000}
	huge := FileCandidate{Path: "a/x.py", Score: 1.0, Tokens: 20000}

	if !(Score(small) > Score(medium) && Score(medium) > Score(large) && Score(large) > Score(huge)) {
		t.Errorf("size penalty should decrease monotonically: %v %v %v %v",
			Score(small), Score(medium), Score(large), Score(huge))
	}
}

func TestScoreTestFilePenalty(t *testing.T) {
	test := FileCandidate{Path: "pkg/foo_test.go", Score: 1.2, Tokens: 500}
	impl := FileCandidate{Path: "pkg/foo.go", Score: 1.2, Tokens: 500}
	if Score(test) >= Score(impl) {
		t.Error("test files should rank below implementation files")
	}
}

func TestScoreDeterministic(t *testing.T) {
	c := FileCandidate{Path: "src/main.go", Score: 1.2, Tokens: 1234}
	first := Score(c)
	for i := 0; i < 5; i++ {
		if Score(c) != first {
			t.Fatal("Score must be reproducible for identical input")
		}
	}
}
