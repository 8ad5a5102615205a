package ledger

import (
	"makeready/internal/rules"
	"makeready/internal/survey"
)

// jobDoc is a small survey covering one span of route: pole nA (scid 001)
// to pole nB (scid 002), a reference span east of nA, an underground run
// to a pedestal, and two unclassified connections used for midspan math.
const jobDoc = `{
	"nodes": {
		"nA": {
			"attributes": {
				"node_type": {"-Imported": "pole"},
				"scid": {"auto_button": "001"},
				"DLOC_number": {"d1": "12345"},
				"existing_red_tag?": {"a": true},
				"pole_height": {"one": "40"},
				"pole_class": {"one": "4"},
				"final_passing_capacity_%": {"one": "78.5"}
			},
			"photos": {"pA": {"association": "main"}}
		},
		"nB": {
			"attributes": {
				"node_type": {"-Imported": "pole"},
				"scid": {"auto_button": "002"},
				"pole_tag": {"t1": {"tagtext": "678"}},
				"proposed_pole_spec": {"x": {"value": "45-3"}}
			},
			"photos": {"pB": {"association": "main"}}
		},
		"nPed": {
			"attributes": {
				"node_type": {"btn": "Ped"},
				"scid": {"auto_button": "003"}
			},
			"photos": {"pPed": {"association": "main"}}
		},
		"nRef": {
			"attributes": {"node_type": {"btn": "Reference"}}
		}
	},
	"photos": {
		"pA": {
			"latitude": 29.0, "longitude": -98.0,
			"photofirst_data": {
				"wire": {
					"wNeutral": {"_trace": "tNeutral", "_measured_height": 250, "mr_move": -6},
					"wSL": {"_trace": "tSL", "_measured_height": 260},
					"wATT": {"_trace": "tATT", "_measured_height": 240, "mr_move": 12},
					"wCharter": {"_trace": "tCharter", "_measured_height": 230},
					"wPrimary": {"_trace": "tPrimary", "_measured_height": 300}
				},
				"equipment": {
					"eqDrip": {"_trace": "tEq", "_measured_height": 245, "equipment_type": "drip_loop"},
					"eqXfmr": {"_trace": "tXf", "_measured_height": 280, "equipment_type": "transformer"}
				},
				"guying": {
					"gBelow": {"_trace": "tGuy", "_measured_height": 100, "proposed": true},
					"gAbove": {"_trace": "tGuy", "_measured_height": 255}
				}
			}
		},
		"pB": {"latitude": 29.01, "longitude": -98.0},
		"pPed": {"latitude": 29.0, "longitude": -98.01},
		"pS1": {
			"photofirst_data": {
				"wire": {
					"wS1": {"_trace": "tATT", "_measured_height": 200},
					"wSN": {"_trace": "tNeutral", "_measured_height": 260}
				}
			}
		},
		"pS2": {
			"photofirst_data": {
				"wire": {
					"wS2": {"_trace": "tATT", "_measured_height": 180, "mr_move": 12}
				},
				"guying": {
					"gS": {"_trace": "tATT", "_measured_height": 90}
				}
			}
		},
		"pR": {
			"photofirst_data": {
				"wire": {
					"wR": {"_trace": "tATT", "_measured_height": 210}
				}
			}
		},
		"pHU": {
			"photofirst_data": {
				"wire": {
					"wHU": {"_trace": "tATT", "_measured_height": 120, "_effective_moves": {"e": 7}}
				}
			}
		},
		"pHD": {
			"photofirst_data": {
				"wire": {
					"wHD": {"_trace": "tATT", "_measured_height": 120, "_effective_moves": {"e": -7}}
				}
			}
		}
	},
	"traces": {
		"trace_data": {
			"tNeutral": {"company": "CPS Energy", "cable_type": "Neutral"},
			"tSL": {"company": "CPS Energy", "cable_type": "Street Light"},
			"tPrimary": {"company": "CPS Energy", "cable_type": "Primary"},
			"tATT": {"company": "AT&T", "cable_type": "Fiber"},
			"tCharter": {"company": "Charter", "cable_type": "Fiber", "proposed": true},
			"tEq": {"company": "AT&T", "equipment_type": "Drip Loop"},
			"tXf": {"company": "CPS Energy", "equipment_type": "Transformer"},
			"tGuy": {"company": "AT&T", "cable_type": "Down Guy"},
			"tUG": {"company": "AT&T", "connection_id": "cUG"}
		}
	},
	"connections": {
		"cAB": {
			"node_id_1": "nB", "node_id_2": "nA",
			"attributes": {"connection_type": {"button_added": "aerial cable"}},
			"sections": {
				"s1": {"latitude": 29.005, "longitude": -98.0,
					"photos": {"pS1": {"association": "main"}}},
				"s2": {"photos": {"pS2": {"association": "main"}}}
			}
		},
		"cRef": {
			"node_id_1": "nA", "node_id_2": "nRef",
			"attributes": {"connection_type": {"btn": "wire reference"}},
			"sections": {
				"r0": {},
				"r1": {"latitude": 29.0, "longitude": -97.99,
					"photos": {"pR": {"association": "main"}}},
				"r2": {}
			}
		},
		"cUG": {
			"node_id_1": "nA", "node_id_2": "nPed",
			"attributes": {"connection_type": {"button_added": "underground cable"}}
		},
		"cHalfUp": {
			"node_id_1": "nA", "node_id_2": "nB",
			"sections": {"h": {"photos": {"pHU": {"association": "main"}}}}
		},
		"cHalfDown": {
			"node_id_1": "nA", "node_id_2": "nB",
			"sections": {"h": {"photos": {"pHD": {"association": "main"}}}}
		}
	}
}`

func testResolver() *Resolver {
	return New(survey.FromString(jobDoc), rules.Default())
}
