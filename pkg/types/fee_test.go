package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeRecordValidate(t *testing.T) {
	require.NoError(t, FeeRecord{StudentID: "s1", TotalFee: 4200, PaidFee: 1000}.Validate())
	require.NoError(t, FeeRecord{StudentID: "s1"}.Validate())

	var verr *ValidationError

	require.ErrorAs(t, FeeRecord{StudentID: "s1", TotalFee: -1}.Validate(), &verr)
	assert.Equal(t, "totalFee", verr.Field)

	require.ErrorAs(t, FeeRecord{StudentID: "s1", TotalFee: 100, PaidFee: -1}.Validate(), &verr)
	assert.Equal(t, "paidFee", verr.Field)

	require.ErrorAs(t, FeeRecord{StudentID: "s1", TotalFee: 100, PaidFee: 101}.Validate(), &verr)
	assert.Equal(t, "paidFee", verr.Field)

	require.ErrorAs(t, FeeRecord{TotalFee: 100}.Validate(), &verr)
	assert.Equal(t, "studentId", verr.Field)
}

func TestFeeRecordOutstanding(t *testing.T) {
	f := FeeRecord{StudentID: "s1", TotalFee: 4200, PaidFee: 1000}
	assert.Equal(t, 3200.0, f.Outstanding())
}

func TestSalaryRecordValidate(t *testing.T) {
	require.NoError(t, SalaryRecord{TeacherID: "t1", BasicMonthlyPay: 5400}.Validate())

	var verr *ValidationError
	require.ErrorAs(t, SalaryRecord{TeacherID: "t1", BasicMonthlyPay: -1}.Validate(), &verr)
	assert.Equal(t, "basicMonthlyPay", verr.Field)

	require.ErrorAs(t, SalaryRecord{}.Validate(), &verr)
	assert.Equal(t, "teacherId", verr.Field)
}
