package rdfa_test

import (
	"os"

	"github.com/factsmission/tlds/pkg/rdf"
	"github.com/factsmission/tlds/pkg/rdfa"
)

func Example() {
	g := rdf.NewGraph(
		rdf.Triple{Subject: rdf.IRI("ex:Alice"), Predicate: "ex:knows", Object: rdf.IRI("ex:Bob")},
		rdf.Triple{Subject: rdf.IRI("ex:Bob"), Predicate: "ex:name", Object: rdf.NewLiteral("Bob", "xsd:string")},
	)

	if err := rdfa.New().Serialize(os.Stdout, g, rdfa.FormatHTML); err != nil {
		panic(err)
	}
	// Output:
	// <table>
	//     <tbody about='ex:Alice'>
	//         <tr><td colspan='2'><h1>ex:Alice</h1></td></tr>
	//         <tr>
	//             <td rowspan='1'><a href='ex:knows'>ex:knows</a></td>
	//             <td><a property='ex:knows' resource='ex:Bob' href='ex:Bob'>ex:Bob</a></td>
	//         </tr>
	//     </tbody>
	//     <tbody about='ex:Bob'>
	//         <tr><td colspan='2'><h1>ex:Bob</h1></td></tr>
	//         <tr>
	//             <td rowspan='1'><a href='ex:name'>ex:name</a></td>
	//             <td><span datatype='xsd:string' property='ex:name'>Bob</span></td>
	//         </tr>
	//     </tbody>
	// </table>
}

func ExampleWithRawOutput() {
	g := rdf.NewGraph(
		rdf.Triple{Subject: rdf.NewBlankNode(), Predicate: "ex:note", Object: rdf.NewLiteral("<em>hi</em>", "ex:html")},
	)

	_ = rdfa.New(rdfa.WithRawOutput()).Serialize(os.Stdout, g, rdfa.FormatHTML)
	// Output:
	// <table>
	//     <tbody about='_:0'>
	//         <tr><td colspan='2'><h1>_:0</h1></td></tr>
	//         <tr>
	//             <td rowspan='1'><a href='ex:note'>ex:note</a></td>
	//             <td><span datatype='ex:html' property='ex:note'><em>hi</em></span></td>
	//         </tr>
	//     </tbody>
	// </table>
}
