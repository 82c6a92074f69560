package agent

import "testing"

func TestPoolDeduplicatesAcrossBatches(t *testing.T) {
	p := newPool(10)

	added := p.add([]Document{
		{URL: "https://example.com/a"},
		{URL: "https://example.com/b"},
	})
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}

	added = p.add([]Document{
		{URL: "https://example.com/b"},
		{URL: "https://example.com/c"},
	})
	if added != 1 {
		t.Fatalf("expected only the novel document added, got %d", added)
	}
	if p.size() != 3 {
		t.Fatalf("expected pool of 3, got %d", p.size())
	}
}

func TestPoolDeduplicatesCanonicalVariants(t *testing.T) {
	p := newPool(10)
	p.add([]Document{{URL: "https://example.com/a?utm_source=rss"}})

	if added := p.add([]Document{{URL: "https://Example.com/a"}}); added != 0 {
		t.Fatal("tracking-parameter variant of a seen url must be dropped")
	}
	if !p.contains("https://example.com/a") {
		t.Fatal("contains should match canonical form")
	}
}

func TestPoolRespectsCapacity(t *testing.T) {
	p := newPool(2)
	added := p.add([]Document{
		{URL: "https://example.com/1"},
		{URL: "https://example.com/2"},
		{URL: "https://example.com/3"},
	})
	if added != 2 || p.size() != 2 {
		t.Fatalf("expected capacity cap at 2, got added=%d size=%d", added, p.size())
	}
	if !p.full() {
		t.Fatal("pool should report full")
	}
}

func TestPoolDocumentsReturnsCopy(t *testing.T) {
	p := newPool(5)
	p.add([]Document{{URL: "https://example.com/1", Title: "one"}})

	docs := p.documents()
	docs[0].Title = "mutated"

	if p.documents()[0].Title != "one" {
		t.Fatal("documents() must return a copy")
	}
}
