package visual

const femaleOver50Top10 = `
SELECT customer_id, age, gender, product_category, total_amount
FROM {{.Table}}
WHERE gender = 'Female' AND age > 50
ORDER BY total_amount DESC
LIMIT 10`

const electronicsOver1000 = `
SELECT date, customer_id, product_category, quantity, total_amount
FROM {{.Table}}
WHERE product_category = 'Electronics' AND total_amount > 1000
ORDER BY total_amount DESC`

const beauty18to25 = `
SELECT customer_id, age, gender, quantity, total_amount
FROM {{.Table}}
WHERE product_category = 'Beauty' AND age BETWEEN 18 AND 25
ORDER BY age`

const genderStats = `
SELECT
	gender,
	COUNT(*) AS transaction_count,
	AVG(age) AS avg_age,
	MIN(age) AS min_age,
	MAX(age) AS max_age,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_transaction
FROM {{.Table}}
GROUP BY gender
ORDER BY gender`

const categoryGender = `
SELECT
	product_category,
	gender,
	COUNT(*) AS transactions,
	SUM(quantity) AS total_items,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_transaction
FROM {{.Table}}
GROUP BY product_category, gender
ORDER BY product_category, gender`

const monthly = `
SELECT
	month,
	gender,
	COUNT(*) AS transactions,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_sale
FROM (
	SELECT {{month "date"}} AS month, gender, total_amount
	FROM {{.Table}}
) AS monthly
GROUP BY month, gender
ORDER BY month, gender`

// These bands differ from the query runner's: under-25s are one group and
// each later band starts on a multiple of five.
const ageGroups = `
SELECT
	age_group,
	COUNT(*) AS transaction_count,
	COUNT(DISTINCT customer_id) AS unique_customers,
	SUM(total_amount) AS total_sales,
	AVG(total_amount) AS avg_transaction,
	SUM(quantity) AS total_items,
	AVG(quantity) AS avg_items
FROM (
	SELECT
		CASE
			WHEN age < 25 THEN '18-24'
			WHEN age BETWEEN 25 AND 34 THEN '25-34'
			WHEN age BETWEEN 35 AND 44 THEN '35-44'
			WHEN age BETWEEN 45 AND 54 THEN '45-54'
			ELSE '55+'
		END AS age_group,
		CASE
			WHEN age < 25 THEN 1
			WHEN age BETWEEN 25 AND 34 THEN 2
			WHEN age BETWEEN 35 AND 44 THEN 3
			WHEN age BETWEEN 45 AND 54 THEN 4
			ELSE 5
		END AS age_order,
		customer_id, total_amount, quantity
	FROM {{.Table}}
) AS banded
GROUP BY age_group, age_order
ORDER BY age_order`

const transactions = `
SELECT age, gender, total_amount, quantity
FROM {{.Table}}`

const categorySummary = `
SELECT product_category, SUM(total_amount) AS total_sales, COUNT(*) AS transactions
FROM {{.Table}}
GROUP BY product_category
ORDER BY product_category`
