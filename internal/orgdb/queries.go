package orgdb

import (
	"strconv"
	"strings"

	"github.com/hxeb/hxebclass/pkg/constants"
)

// Queries use "?" placeholders and are rebound per driver.

const arrangementsQuery = `
SELECT a.ArrangeID
    ,c.ClassId
    ,a.SeasonId
    ,s.SeasonNameCn
    ,c.ClassNameCn
    ,c.ClassNameEn
    ,c.Description
    ,cr.RoomNo
    ,c.TypeId
    ,t.TypeNameCn
    ,tc.Email
    ,fwt.Fee
    ,a.Tuition_W
    ,fwb.Fee
    ,a.BookFee_W
    ,a.SpecialFee_W
    ,fht.Fee
    ,a.Tuition_H
    ,fhb.Fee
    ,a.BookFee_H
    ,a.SpecialFee_H
FROM Arrangement a
INNER JOIN Classes c ON a.ClassID = c.ClassID
INNER JOIN Seasons s ON a.SeasonID = s.SeasonID
LEFT JOIN Classrooms cr ON a.RoomID = cr.RoomID
LEFT JOIN ClassType t ON c.TypeId = t.TypeId
LEFT JOIN Teachers tc ON a.TeacherID = tc.TeacherID
LEFT JOIN Fee fwt ON a.TuitionWID = fwt.FeeID
LEFT JOIN Fee fht ON a.TuitionHID = fht.FeeID
LEFT JOIN Fee fwb ON a.BookFeeWID = fwb.FeeID
LEFT JOIN Fee fhb ON a.BookFeeHID = fhb.FeeID
WHERE a.SeasonId = ?
AND a.ActiveStatus = 'Active'`

const classFilter = `
AND c.ClassId = ?`

const arrangementsOrder = `
ORDER BY c.ClassId`

const registrationsQuery = `
SELECT a.ArrangeID
    ,c.ClassId
    ,a.SeasonId
    ,c.ClassNameCn
    ,st.StudentID
    ,st.StudentNameCn
    ,st.FirstName
    ,st.LastName
    ,f.Email
FROM StudentRegistration r
INNER JOIN Arrangement a ON r.ArrangeID = a.ArrangeID
INNER JOIN Classes c ON a.ClassID = c.ClassID
INNER JOIN Students st ON r.StudentID = st.StudentID
LEFT JOIN Family f ON st.FamilyID = f.FamilyID
WHERE a.SeasonId = ?
AND a.ActiveStatus = 'Active'
ORDER BY c.ClassId, st.LastName, st.FirstName`

// rebind rewrites "?" placeholders into the driver's native form.
func rebind(driver, query string) string {
	var prefix string
	switch driver {
	case constants.DriverSQLServer:
		prefix = "@p"
	case constants.DriverPostgres:
		prefix = "$"
	default:
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(prefix)
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
