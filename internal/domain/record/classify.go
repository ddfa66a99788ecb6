package record

// Rule maps an item to a type name when its predicate matches.
type Rule struct {
	Name  string
	Match func(Item) (string, bool)
}

// fieldRule matches the first non-empty string among keys and uses it verbatim.
func fieldRule(name string, keys ...string) Rule {
	return Rule{Name: name, Match: func(it Item) (string, bool) {
		for _, k := range keys {
			if s, ok := it[k].(string); ok && s != "" {
				return s, true
			}
		}
		return "", false
	}}
}

// presenceRule matches when any of keys is truthy and yields a fixed type.
func presenceRule(typeName string, keys ...string) Rule {
	return Rule{Name: typeName + "-id", Match: func(it Item) (string, bool) {
		if _, ok := it.First(keys...); ok {
			return typeName, true
		}
		return "", false
	}}
}

// Rules is the ordered classification chain; the first match wins.
var Rules = []Rule{
	fieldRule("scope", KeyScope),
	fieldRule("type", "type", "source", "_type"),
	presenceRule(Asset.Name(), "assetId", "deviceId"),
	presenceRule(Form.Name(), "formId", "templateId"),
	presenceRule(Page.Name(), "pageId"),
	presenceRule(Task.Name(), "taskId"),
}

// Classify determines the record type of it. Nil items classify as Unknown.
func Classify(it Item) Type {
	for _, r := range Rules {
		if name, ok := r.Match(it); ok {
			return TypeOf(name)
		}
	}
	return Unknown
}

// Group is the items classified under one type, in input order.
type Group struct {
	Type  Type
	Items []Item
}

// GroupByType classifies items, preserving the order in which types are first discovered.
func GroupByType(items []Item) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, it := range items {
		t := Classify(it)
		i, ok := index[t.Name()]
		if !ok {
			i = len(groups)
			index[t.Name()] = i
			groups = append(groups, Group{Type: t})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
