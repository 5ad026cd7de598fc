/*
Package dsl provides a fluent Go builder for DAG documents.

It produces the same generic document a JSON or YAML file decodes to, so graphs
built in code go through exactly the checks file input does. This is
particularly useful for generated graphs and unit tests.

Example usage:

	b := dsl.New().Entry("start")

	b.Add("start").Function("StartFn").Go("toolA")
	b.Add("toolA").Tool("ToolA").Branch("ok", "end")
	b.Add("end").Function("EndFn")

	graph, err := b.Build()
	if err != nil {
		// errors.Is(err, domain.ErrInvalidStructure) ...
	}
*/
package dsl
