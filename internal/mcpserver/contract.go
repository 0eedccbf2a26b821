package mcpserver

// LogFormatContract describes the persisted peak log and the rules new
// climbs must satisfy, for LLM consumers of the MCP tools.
const LogFormatContract = `# Peak Log Format

The log is a JSON array stored under the key ` + "`userPeakLog`" + `. It is
rewritten in full after every change.

## Record

` + "```" + `json
{
  "peak_name": "Longs Peak",
  "range": "Front Range",
  "rank": "15",
  "elevation": 14255,
  "towns": "Estes Park",
  "latitude": 40.2548,
  "longitude": -105.616,
  "imgSrc": "longs.jpg",
  "dateClimbed": "2024-07-04",
  "notes": "Keyhole route"
}
` + "```" + `

Peak attributes are copied from the catalog when the climb is logged.

## Rules

1. ` + "`peak_name`" + ` must match a catalog name exactly (see ` + "`list_peaks`" + `).
2. ` + "`dateClimbed`" + ` is ` + "`YYYY-MM-DD`" + `, no later than today and no earlier
   than the same day 100 years ago.
3. The same peak may be logged many times, including twice on one day.
4. Removing a climb removes every record with that peak and date.
5. ` + "`rank`" + ` is a number as text, or ` + "`N/A`" + ` for unranked peaks. Unranked
   peaks sort after all ranked ones in the ` + "`peak-rank`" + ` order.
`
