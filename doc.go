// Package wayangkg builds knowledge graphs from annotated Indonesian
// narrative text. It extracts typed relations between tagged entity
// mentions with three strategies of decreasing precision, lexical patterns,
// dependency-parse inference and sentence co-occurrence, fuses the results
// under an explicit priority policy and accumulates them into a directed
// multigraph with on-demand analytics.
//
// # Basic Usage
//
// Create a client and feed it pre-annotated documents:
//
//	client, err := wayangkg.NewClient(nil, nil, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	doc := types.Document{
//		ID:      "cerita-1",
//		Dataset: "mahabharata",
//		Sentences: []types.Sentence{{
//			Text: "Nakula dan Sadewa adalah saudara kembar",
//			Mentions: []types.EntityMention{
//				{Text: "Nakula", Type: types.EntityPerson, Start: 0, End: 6},
//				{Text: "Sadewa", Type: types.EntityPerson, Start: 11, End: 17},
//			},
//		}},
//	}
//
//	if _, err := client.ProcessDocument(ctx, doc); err != nil {
//		log.Fatal(err)
//	}
//
// # Inspecting the Graph
//
// The accumulated graph is exported as a snapshot, queried per entity, or
// summarized with analytics:
//
//	snap := client.Snapshot()
//	stats := client.Statistics()
//	info, err := client.GetEntity("Nakula")
//	sub, err := client.Subgraph("Nakula", 2)
//
// Entity tagging, sentence segmentation and dependency parsing happen
// outside this module. A dependency parse is optional input: when absent,
// the syntax tier degrades to zero candidates and the other tiers carry on.
package wayangkg
